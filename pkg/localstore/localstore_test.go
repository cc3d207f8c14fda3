package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"trading-journal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal", "store.gob")

	s, err := Open(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "pending_trading_data", []byte(`{"pending_count":1}`)))

	reopened, err := Open(Config{Path: path})
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "pending_trading_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"pending_count":1}`, string(v))
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.gob")
	s, err := Open(Config{Path: path})
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))

	reopened, err := Open(Config{Path: path})
	require.NoError(t, err)
	_, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreQuota(t *testing.T) {
	ctx := context.Background()
	s, err := Open(Config{MaxBytes: 10})
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", []byte("12345")))
	require.NoError(t, s.Set(ctx, "a", []byte("1234567890")), "overwriting a key only counts the new value")

	err = s.Set(ctx, "b", []byte("x"))
	assert.ErrorIs(t, err, apperror.ErrStorageQuotaExceeded)

	_, ok, _ := s.Get(ctx, "b")
	assert.False(t, ok)
	assert.Equal(t, 10, s.Size())
}
