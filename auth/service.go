package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
)

// stateTTL bounds how long an OAuth handshake may take
// between the initial redirect and the provider callback.
const stateTTL = 10 * time.Minute

// The OAuthService wraps the Google authorization-code handshake.
type OAuthService interface {
	LoginURL() (string, error)
	VerifyState(state string) error
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUser(ctx context.Context, token *oauth2.Token) (*goauth2.Userinfo, error)
}

// Service is an implementation of the OAuthService interface defined in this package.
type Service struct {
	config *oauth2.Config
	key    []byte
	parser *jwt.Parser
}

var _ OAuthService = (*Service)(nil)

// NewService constructs a *Service performing Google OAuth handshakes.
//
// stateKey signs the state parameter; googleClient and googleSecret identify
// the application to Google; redirectURL is where Google sends the user back.
func NewService(stateKey, googleClient, googleSecret, redirectURL string) (*Service, error) {
	if stateKey == "" || googleClient == "" || googleSecret == "" || redirectURL == "" {
		return nil, fmt.Errorf(`%w: config cannot be ""`, ErrNotValid)
	}

	return &Service{
		config: &oauth2.Config{
			ClientID:     googleClient,
			ClientSecret: googleSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{goauth2.UserinfoProfileScope},
			Endpoint:     google.Endpoint,
		},
		key:    []byte(stateKey),
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// LoginURL returns the provider URL beginning the handshake,
// carrying a freshly signed state token.
func (s *Service) LoginURL() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: signing state: %s", ErrUnexpected, err)
	}

	return s.config.AuthCodeURL(state), nil
}

// VerifyState checks the state parameter returned by the provider
// was one this Service issued and has not expired.
func (s *Service) VerifyState(state string) error {
	if state == "" {
		return fmt.Errorf("%w: no state param set", ErrNotValid)
	}

	_, err := s.parser.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	return nil
}

// Exchange trades the authorization code for a provider token.
func (s *Service) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return token, nil
}
