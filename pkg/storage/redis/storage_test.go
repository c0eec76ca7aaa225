package redis_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndanilchenko/tasktrack/pkg/storage/redis"
)

func newStorage(t *testing.T) (*redis.Storage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := redis.New(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStorageSetGet(t *testing.T) {
	store, _ := newStorage(t)

	require.NoError(t, store.Set("k", []byte("v"), 0))
	val, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)
}

func TestStorageMissingKey(t *testing.T) {
	store, _ := newStorage(t)

	val, err := store.Get("absent")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorageExpiration(t *testing.T) {
	store, mr := newStorage(t)

	require.NoError(t, store.Set("k", []byte("v"), time.Minute))
	mr.FastForward(2 * time.Minute)

	val, err := store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestStorageDeleteAndReset(t *testing.T) {
	store, _ := newStorage(t)

	require.NoError(t, store.Set("a", []byte("1"), 0))
	require.NoError(t, store.Set("b", []byte("2"), 0))

	require.NoError(t, store.Delete("a"))
	val, err := store.Get("a")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Reset())
	val, err = store.Get("b")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestNewUnreachable(t *testing.T) {
	_, err := redis.New("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
