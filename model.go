package whisperwall

import (
	"database/sql"
	"time"
)

// A Model is the essential data points for primary ID-based models,
// indicating when a record was created, last updated and soft deleted.
type Model struct {
	ID        uint        `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	DeletedAt DeletedTime `json:"deletedAt" gorm:"index"`
}

// Exists asserts whether the record is backed by a database row.
func (m Model) Exists() bool { return m.ID != 0 }

// DeletedTime is a nullable timestamp marking a record as soft deleted.
type DeletedTime struct {
	sql.NullTime
}

// IsDeleted asserts whether the record is soft deleted.
func (dt DeletedTime) IsDeleted() bool { return dt.Valid }
