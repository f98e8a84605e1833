package memory_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedwatch/internal/cache/memory"
	"feedwatch/internal/custom_errors"
	"feedwatch/internal/logger"
	"feedwatch/internal/model"
)

func newClient(t *testing.T) *memory.Client {
	client, err := memory.NewClient(logger.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_SetGet(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	post := &model.Post{ID: "p1", Username: "ann", Content: "hello"}
	require.NoError(t, client.Set(ctx, "post:p1", post, time.Minute))

	var got model.Post
	require.NoError(t, client.Get(ctx, "post:p1", &got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "hello", got.Content)
}

func TestClient_GetMissingKey(t *testing.T) {
	client := newClient(t)

	var got model.Post
	err := client.Get(context.Background(), "post:absent", &got)

	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestClient_ExpiredEntryIsAMiss(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "post:p1", &model.Post{ID: "p1"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var got model.Post
	err := client.Get(ctx, "post:p1", &got)

	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestClient_ZeroTTLNeverExpires(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "post:p1", &model.Post{ID: "p1"}, 0))

	var got model.Post
	require.NoError(t, client.Get(ctx, "post:p1", &got))
	assert.Equal(t, "p1", got.ID)
}

func TestClient_Delete(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "post:p1", &model.Post{ID: "p1"}, time.Minute))
	require.NoError(t, client.Delete(ctx, "post:p1"))

	var got model.Post
	assert.ErrorIs(t, client.Get(ctx, "post:p1", &got), custom_errors.ErrCacheMiss)
}

func TestClient_EvictsOldestWhenFull(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	// One past capacity pushes the oldest key out.
	for i := 0; i < 257; i++ {
		key := "post:" + strconv.Itoa(i)
		require.NoError(t, client.Set(ctx, key, &model.Post{ID: key}, time.Minute))
	}

	var got model.Post
	assert.ErrorIs(t, client.Get(ctx, "post:0", &got), custom_errors.ErrCacheMiss)
	require.NoError(t, client.Get(ctx, "post:256", &got))
}

func TestClient_CloseDropsEntries(t *testing.T) {
	client, err := memory.NewClient(logger.New("test"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "post:p1", &model.Post{ID: "p1"}, time.Minute))
	require.NoError(t, client.Close())

	var got model.Post
	assert.ErrorIs(t, client.Get(ctx, "post:p1", &got), custom_errors.ErrCacheMiss)
}
