package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Storage {
	local, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return map[string]Storage{
		"local":  local,
		"memory": NewMemoryStorage(),
	}
}

func TestStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "seller-form-data")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Save(ctx, "seller-form-data", strings.NewReader(`{"step":1}`)))
			require.NoError(t, s.Save(ctx, "seller-form-data", strings.NewReader(`{"step":2}`)))

			data, err := ReadAll(ctx, s, "seller-form-data")
			require.NoError(t, err)
			assert.Equal(t, `{"step":2}`, string(data))

			ok, err := s.Exists(ctx, "seller-form-data")
			require.NoError(t, err)
			assert.True(t, ok)

			require.NoError(t, s.Delete(ctx, "seller-form-data"))
			require.NoError(t, s.Delete(ctx, "seller-form-data"))

			ok, err = s.Exists(ctx, "seller-form-data")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestLocalStorage_RejectsPathKeys(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	err = s.Save(context.Background(), "../escape", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "s3"})
	assert.EqualError(t, err, "unsupported storage type: s3")
}
