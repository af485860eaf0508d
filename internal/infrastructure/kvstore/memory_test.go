package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore()

	var out []string
	found, err := s.Load(context.Background(), "nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", []string{"a", "b"}))

	var out []string
	found, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "k", 42))
	require.NoError(t, s.Delete(ctx, "k"))

	var out int
	found, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreCorruptEntryDegradesToDefault(t *testing.T) {
	s := NewMemoryStore()
	s.SaveRaw("k", []byte("{not json"))

	var out map[string]string
	found, err := s.Load(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

// Valid JSON of the wrong shape must not leave half-decoded elements in
// the destination; the whole document degrades to the empty default.
func TestMemoryStoreWrongShapeLeavesDestUntouched(t *testing.T) {
	type row struct {
		Name string `json:"name"`
	}

	s := NewMemoryStore()
	s.SaveRaw("k", []byte(`[{"name":"keep"},{"name":123}]`))

	var out []row
	found, err := s.Load(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}
