package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedwatch/internal/custom_errors"
)

func TestDecodeFeedEvent(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantType EventType
		wantID   string
		wantErr  bool
	}{
		{
			name:     "created event",
			payload:  `{"event":"post:created","post":{"id":"p1","userId":"u1","username":"ann","content":"hi"}}`,
			wantType: EventPostCreated,
			wantID:   "p1",
		},
		{
			name:     "deleted event with id only",
			payload:  `{"event":"post:deleted","post":{"id":"p2"}}`,
			wantType: EventPostDeleted,
			wantID:   "p2",
		},
		{
			name:    "missing post id",
			payload: `{"event":"post:created","post":{"content":"hi"}}`,
			wantErr: true,
		},
		{
			name:    "missing post object",
			payload: `{"event":"post:deleted"}`,
			wantErr: true,
		},
		{
			name:    "unknown event type",
			payload: `{"event":"post:liked","post":{"id":"p1"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `garbage`,
			wantErr: true,
		},
		{
			name:    "invalid media type",
			payload: `{"event":"post:created","post":{"id":"p1","mediaType":"gif"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := DecodeFeedEvent([]byte(tt.payload))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, custom_errors.ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, event.Type)
			assert.Equal(t, tt.wantID, event.PostID())
		})
	}
}

func TestMediaType_UnmarshalText(t *testing.T) {
	var mt MediaType
	require.NoError(t, mt.UnmarshalText([]byte("image")))
	assert.Equal(t, MediaTypeImage, mt)

	require.NoError(t, mt.UnmarshalText([]byte("video")))
	assert.Equal(t, MediaTypeVideo, mt)

	assert.Error(t, mt.UnmarshalText([]byte("gif")))
}

func TestPostPage_IsLast(t *testing.T) {
	full := &PostPage{Posts: []*Post{{ID: "a"}, {ID: "b"}}, Limit: 2}
	assert.False(t, full.IsLast())

	short := &PostPage{Posts: []*Post{{ID: "a"}}, Limit: 2}
	assert.True(t, short.IsLast())

	empty := &PostPage{Limit: 2}
	assert.True(t, empty.IsLast())
}
