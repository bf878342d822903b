package whisperwall

import "database/sql"

// A User is the core entity that interacts with a whisperwall application.
//
// A User comes to exist one of two ways:
// registering with a username & password,
// or completing a Google OAuth handshake,
// in which case only GoogleID identifies the record.
// Upon a match, a session is created and stored.
// Further requests are authenticated by referencing that session.
//
// A User publishes at most one Secret;
// submitting again overwrites the previous value.
type User struct {
	Model
	Email    sql.NullString `json:"email"`
	Username string         `json:"username" gorm:"uniqueIndex"`
	Password []byte         `json:"-"`
	GoogleID sql.NullString `json:"-" gorm:"column:google_id;uniqueIndex"`
	Secret   sql.NullString `json:"secret"`
}

// NullString wraps s as a valid sql.NullString.
func NullString(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

// NewGoogleUser constructs a User identified by the provider-scoped ID.
//
// Google accounts carry no chosen handle; Username derives from the
// identifier so every record satisfies the unique index.
func NewGoogleUser(googleID string) User {
	return User{
		Username: "google:" + googleID,
		GoogleID: NullString(googleID),
	}
}

// HasAccess asserts whether the User's properties give it general
// access to the application.
func (u User) HasAccess() bool { return u.Exists() && !u.DeletedAt.IsDeleted() }

// HomePath returns the relative URL path designated
// as the default resource the User can access.
func (u User) HomePath() string {
	if !u.HasAccess() {
		return "/login"
	}

	return "/secrets"
}

// GetID exposes the User's primary ID to logging.
func (u User) GetID() uint { return u.ID }

// GetUsername exposes the User's handle to logging.
func (u User) GetUsername() string { return u.Username }

// HasSecret asserts whether the User published a secret.
func (u User) HasSecret() bool { return u.Secret.Valid }

// The UserStorer wraps the persistence operations the application
// performs against the collection of User records.
//
// No operation deletes a User; records are only ever created
// and mutated by overwriting Secret.
type UserStorer interface {
	// Create inserts the User, hashing nothing;
	// callers hash credential material first.
	// ErrExists returns when Username is taken.
	Create(user *User) error

	// FindByID retrieves the User by primary ID,
	// returning ErrNotFound when no record matches.
	FindByID(id uint) (User, error)

	// FindByUsername retrieves the User by their unique Username,
	// returning ErrNotFound when no record matches.
	FindByUsername(username string) (User, error)

	// FindOrCreateByGoogleID retrieves the User matching the provider-scoped
	// identifier, creating a record when none exists.
	FindOrCreateByGoogleID(googleID string) (User, error)

	// SaveSecret overwrites the Secret for the identified User.
	SaveSecret(id uint, secret string) error

	// WithSecrets retrieves every User whose Secret is non-null.
	WithSecrets() ([]User, error)
}
