// Package activity keeps the short feed of recent admin changes shown on
// the dashboard.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit caps the feed when no limit is configured.
const DefaultLimit = 100

// Entry is one recorded change.
type Entry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityID  string `json:"entity_id"`
	Summary   string `json:"summary"`
	Timestamp int64  `json:"timestamp"`
}

// Actions recorded by the handlers.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionBind   = "bind"
	ActionUnbind = "unbind"
	ActionApply  = "apply"
)

// Feed records entries and returns the most recent ones first.
type Feed interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Ping(ctx context.Context) error
	// Backend names the implementation for system info.
	Backend() string
	Close() error
}

// NewEntry fills in the id and timestamp of an entry.
func NewEntry(action, entity, entityID, summary string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Summary:   summary,
		Timestamp: time.Now().UTC().Unix(),
	}
}
