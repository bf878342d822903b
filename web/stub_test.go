package web_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/whisperwall/whisperwall"
	"github.com/whisperwall/whisperwall/audit"
	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
)

// userStoreStub is an in-memory whisperwall.UserStorer.
type userStoreStub struct {
	mu      sync.Mutex
	nextID  uint
	saveErr error
	users   map[uint]whisperwall.User
}

func newUserStoreStub() *userStoreStub {
	return &userStoreStub{users: make(map[uint]whisperwall.User)}
}

func (s *userStoreStub) Create(user *whisperwall.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username %q", whisperwall.ErrExists, user.Username)
		}
	}

	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *userStoreStub) FindByID(id uint) (whisperwall.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return whisperwall.User{}, fmt.Errorf("%w: user %d", whisperwall.ErrNotFound, id)
	}

	return u, nil
}

func (s *userStoreStub) FindByUsername(username string) (whisperwall.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}

	return whisperwall.User{}, fmt.Errorf("%w: username %q", whisperwall.ErrNotFound, username)
}

func (s *userStoreStub) FindOrCreateByGoogleID(googleID string) (whisperwall.User, error) {
	s.mu.Lock()
	for _, u := range s.users {
		if u.GoogleID.Valid && u.GoogleID.String == googleID {
			s.mu.Unlock()
			return u, nil
		}
	}
	s.mu.Unlock()

	u := whisperwall.NewGoogleUser(googleID)
	if err := s.Create(&u); err != nil {
		return whisperwall.User{}, err
	}

	return u, nil
}

func (s *userStoreStub) SaveSecret(id uint, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%w: user %d", whisperwall.ErrNotFound, id)
	}

	u.Secret = whisperwall.NullString(secret)
	s.users[id] = u
	return nil
}

func (s *userStoreStub) WithSecrets() ([]whisperwall.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []whisperwall.User
	for _, u := range s.users {
		if u.HasSecret() {
			out = append(out, u)
		}
	}

	return out, nil
}

// recorderStub captures audit events in memory.
type recorderStub struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorderStub) Record(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorderStub) recorded() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event(nil), r.events...)
}

// oauthStub is a programmable auth.OAuthService.
type oauthStub struct {
	loginURL    string
	stateErr    error
	exchangeErr error
	fetchErr    error
	info        *goauth2.Userinfo
}

func (o *oauthStub) LoginURL() (string, error) { return o.loginURL, nil }

func (o *oauthStub) VerifyState(_ string) error { return o.stateErr }

func (o *oauthStub) Exchange(_ context.Context, _ string) (*oauth2.Token, error) {
	if o.exchangeErr != nil {
		return nil, o.exchangeErr
	}
	return &oauth2.Token{AccessToken: "stub"}, nil
}

func (o *oauthStub) FetchUser(_ context.Context, _ *oauth2.Token) (*goauth2.Userinfo, error) {
	if o.fetchErr != nil {
		return nil, o.fetchErr
	}
	return o.info, nil
}

// pingerStub fakes database reachability.
type pingerStub struct{ err error }

func (p pingerStub) Ping() error { return p.err }
