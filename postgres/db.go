package postgres

import (
	"errors"
	"fmt"

	"github.com/whisperwall/whisperwall"
	"gorm.io/gorm"
)

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Specifically, some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// Chaining methods on DB always produce a new DB
	// so a shared *DB never accumulates query state.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// Model specifies the table the current query runs against.
func (db *DB) Model(value any) *DB { return &DB{db.db.Model(value)} }

// Where adds a condition to the current query.
func (db *DB) Where(query any, args ...any) *DB { return &DB{db.db.Where(query, args...)} }

// Create inserts value into the database, updating value with new data yielding from that insertion.
//
// If value violates a unique constraint defined by the database, ErrExists returns.
// If value violates a not-null constraint, ErrNotValid returns.
func (db *DB) Create(value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", whisperwall.ErrExists, err)

	case errConstraintViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", whisperwall.ErrNotValid, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", whisperwall.ErrUnexpected, value, err)
	}
}

// Find retrieves all records matching the current query
// and stores them in dest.
func (db *DB) Find(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", whisperwall.ErrUnexpected, res.Error)
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotFound.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w", whisperwall.ErrNotFound)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", whisperwall.ErrUnexpected, err)
	}

	return nil
}

// Update sets column to value on all records matching the current query.
//
// If the query affects no records, Update returns ErrNotFound.
func (db *DB) Update(column string, value any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("%w: %s", whisperwall.ErrUnexpected, res.Error)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: update affected no rows", whisperwall.ErrNotFound)
	}

	return nil
}

// Ping confirms the backing connection is alive.
func (db *DB) Ping() error {
	sqlDB, err := db.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", whisperwall.ErrUnexpected, err)
	}

	return sqlDB.Ping()
}
