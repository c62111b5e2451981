package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTranspose EventType = "transpose"
	EventFailure   EventType = "failure"
	EventTruncated EventType = "truncated"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Piece     string    `json:"piece"`
}

// TransposeEvent reports one finished destination.
type TransposeEvent struct {
	EventBase
	Destination Destination   `json:"destination"`
	Annotations int           `json:"annotations"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}

// TruncatedEvent reports a scan stopped by an unmatched "(".
type TruncatedEvent struct {
	EventBase
	UnmatchedAt int `json:"unmatched_at"`
}

// LifecycleHooks defines callbacks for runner observability.
type LifecycleHooks struct {
	OnTranspose func(context.Context, *TransposeEvent)
	OnFailure   func(context.Context, *TransposeEvent)
	OnTruncated func(context.Context, *TruncatedEvent)
}
