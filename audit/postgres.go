package audit

import (
	"context"
	"fmt"

	"github.com/whisperwall/whisperwall"
	"gorm.io/gorm"
)

var _ Recorder = (*DBRecorder)(nil)

// A DBRecorder persists Events to an audit_events table.
//
// The DBRecorder writes through its own *gorm.DB so the audit sink
// can live in a database separate from application data.
type DBRecorder struct {
	db *gorm.DB
}

// NewDBRecorder constructs a *DBRecorder writing through db.
func NewDBRecorder(db *gorm.DB) *DBRecorder { return &DBRecorder{db: db} }

// Record inserts the Event.
func (r *DBRecorder) Record(ctx context.Context, event Event) error {
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("%w: recording audit event: %s", whisperwall.ErrUnexpected, err)
	}

	return nil
}
