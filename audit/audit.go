// Package audit records security-relevant activity against an external log sink.
//
// Recording is best effort: a failed write never fails the request
// that produced the event, callers log and move on.
package audit

import (
	"context"
	"time"
)

// Fixed action tags stamped on recorded events.
const (
	ActionLogin    = "login.attempt"
	ActionRegister = "register.attempt"
	ActionOAuth    = "oauth.callback"
	ActionSubmit   = "secret.submit"
)

// An Event is a single audited action taken by an actor against a target.
type Event struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	TargetID  string    `json:"targetId"`
	Detail    string    `json:"detail"`
}

// TableName implements gorm's Tabler for the Postgres-backed sink.
func (Event) TableName() string { return "audit_events" }

// A Recorder persists Events to some sink.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}

var _ Recorder = NopRecorder{}

// NopRecorder throws Events away.
//
// Useful in tests and development setups with no sink available.
type NopRecorder struct{}

func (NopRecorder) Record(_ context.Context, _ Event) error { return nil }
