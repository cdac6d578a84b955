//go:build unit

package draftstorage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"booking-checkout/internal/infra"
	"booking-checkout/internal/infra/draftstorage"
	"booking-checkout/internal/pkg/clock"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Every backend must honour the same key/value contract.
func TestBackendContract(t *testing.T) {
	backends := map[string]func(t *testing.T) backend{
		"memory": func(t *testing.T) backend {
			return draftstorage.NewMemory(clock.NewRealClock(), 0)
		},
		"file": func(t *testing.T) backend {
			f, err := draftstorage.NewFile(filepath.Join(t.TempDir(), "drafts"))
			require.NoError(t, err)
			return f
		},
		"redis": func(t *testing.T) backend {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return draftstorage.NewRedis(client, 0, nil)
		},
	}

	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := build(t)

			_, err := s.Get(ctx, "bookingDraft:c1")
			assert.True(t, infra.IsKind(err, infra.KindNotFound), "absent key: %v", err)

			require.NoError(t, s.Set(ctx, "bookingDraft:c1", []byte(`{"serviceId":"a"}`)))
			require.NoError(t, s.Set(ctx, "bookingDraft:c1", []byte(`{"serviceId":"b"}`)))
			require.NoError(t, s.Set(ctx, "bookingDraft:c2", []byte(`{"serviceId":"x"}`)))

			got, err := s.Get(ctx, "bookingDraft:c1")
			require.NoError(t, err)
			assert.JSONEq(t, `{"serviceId":"b"}`, string(got))

			require.NoError(t, s.Delete(ctx, "bookingDraft:c1"))
			_, err = s.Get(ctx, "bookingDraft:c1")
			assert.True(t, infra.IsKind(err, infra.KindNotFound))

			require.NoError(t, s.Delete(ctx, "bookingDraft:c1"), "deleting an absent key is not an error")

			other, err := s.Get(ctx, "bookingDraft:c2")
			require.NoError(t, err)
			assert.JSONEq(t, `{"serviceId":"x"}`, string(other))
		})
	}
}

func TestMemoryTTL(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := draftstorage.NewMemory(clk, time.Hour)

	require.NoError(t, s.Set(ctx, "k", []byte("{}")))

	clk.Add(59 * time.Minute)
	_, err := s.Get(ctx, "k")
	require.NoError(t, err)

	clk.Add(time.Minute)
	_, err = s.Get(ctx, "k")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := draftstorage.NewMemory(nil, 0)

	value := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, "k", value))
	value[2] = 'b'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestRedisTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s := draftstorage.NewRedis(client, 30*time.Minute, nil)
	require.NoError(t, s.Set(ctx, "bookingDraft:c1", []byte("{}")))
	assert.Equal(t, 30*time.Minute, mr.TTL("bookingDraft:c1"))

	mr.FastForward(31 * time.Minute)
	_, err := s.Get(ctx, "bookingDraft:c1")
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	persistent := draftstorage.NewRedis(client, 0, nil)
	require.NoError(t, persistent.Set(ctx, "bookingDraft:c2", []byte("{}")))
	assert.Zero(t, mr.TTL("bookingDraft:c2"))
}

func TestRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	s := draftstorage.NewRedis(client, 0, nil)
	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, infra.IsKind(err, infra.KindNotFound))
}

func TestFileKeysAreSafeFileNames(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := draftstorage.NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "bookingDraft:../../etc/passwd", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}
