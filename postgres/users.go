package postgres

import (
	"errors"

	"github.com/whisperwall/whisperwall"
)

var _ whisperwall.UserStorer = (*UserStore)(nil)

// A UserStore implements whisperwall.UserStorer atop a *DB.
type UserStore struct {
	db *DB
}

// NewUserStore constructs a *UserStore querying through db.
func NewUserStore(db *DB) *UserStore { return &UserStore{db: db} }

// Create inserts the User, returning ErrExists when the username is taken.
func (s *UserStore) Create(user *whisperwall.User) error { return s.db.Create(user) }

// FindByID retrieves the User by primary ID.
func (s *UserStore) FindByID(id uint) (whisperwall.User, error) {
	var user whisperwall.User
	err := s.db.Where("id = ?", id).First(&user)
	return user, err
}

// FindByUsername retrieves the User by their unique Username.
func (s *UserStore) FindByUsername(username string) (whisperwall.User, error) {
	var user whisperwall.User
	err := s.db.Where("username = ?", username).First(&user)
	return user, err
}

// FindOrCreateByGoogleID retrieves the User matching the provider-scoped identifier,
// creating a new record when none exists.
//
// A concurrent first login for the same identifier loses the insert race
// against the unique index; the loser re-reads the winner's record.
func (s *UserStore) FindOrCreateByGoogleID(googleID string) (whisperwall.User, error) {
	var user whisperwall.User
	err := s.db.Where("google_id = ?", googleID).First(&user)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, whisperwall.ErrNotFound) {
		return whisperwall.User{}, err
	}

	user = whisperwall.NewGoogleUser(googleID)
	err = s.db.Create(&user)
	if errors.Is(err, whisperwall.ErrExists) {
		var existing whisperwall.User
		if ferr := s.db.Where("google_id = ?", googleID).First(&existing); ferr == nil {
			return existing, nil
		}
	}

	if err != nil {
		return whisperwall.User{}, err
	}

	return user, nil
}

// SaveSecret overwrites the Secret for the identified User.
//
// SaveSecret never trusts a client-supplied ID; callers pass the ID
// resolved from the verified session.
func (s *UserStore) SaveSecret(id uint, secret string) error {
	return s.db.Model(new(whisperwall.User)).Where("id = ?", id).Update("secret", secret)
}

// WithSecrets retrieves every User whose Secret is non-null.
func (s *UserStore) WithSecrets() ([]whisperwall.User, error) {
	var users []whisperwall.User
	err := s.db.Where("secret IS NOT NULL").Find(&users)
	return users, err
}
