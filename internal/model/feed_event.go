package model

import (
	"encoding/json"
	"fmt"

	"feedwatch/internal/custom_errors"
)

type EventType string

const (
	EventPostCreated EventType = "post:created"
	EventPostUpdated EventType = "post:updated"
	EventPostDeleted EventType = "post:deleted"
)

func (t EventType) IsValid() error {
	switch t {
	case EventPostCreated, EventPostUpdated, EventPostDeleted:
		return nil
	}
	return fmt.Errorf("invalid event type: %s", t)
}

// FeedEvent is one notification from the push channel. Deletions may carry
// only the post id.
type FeedEvent struct {
	Type EventType `json:"event"`
	Post *Post     `json:"post"`
}

// PostID returns the id the event targets, empty when the payload is missing it.
func (e *FeedEvent) PostID() string {
	if e.Post == nil {
		return ""
	}
	return e.Post.ID
}

// DecodeFeedEvent parses a raw push-channel frame. Frames with an unknown
// event type or without a post id are rejected so the reconciliation layer
// never sees them.
func DecodeFeedEvent(data []byte) (*FeedEvent, error) {
	var event FeedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrInvalidPayload, err)
	}
	if err := event.Type.IsValid(); err != nil {
		return nil, fmt.Errorf("%w: %v", custom_errors.ErrInvalidPayload, err)
	}
	if event.PostID() == "" {
		return nil, fmt.Errorf("%w: missing post id", custom_errors.ErrInvalidPayload)
	}
	return &event, nil
}
