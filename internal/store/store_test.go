package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFile_LoadMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewJSONFile(filepath.Join(t.TempDir(), "urls.json"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONFile_AppendToEmptyStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	s := NewJSONFile(path)
	n, err := s.Append(context.Background(), Entry{URL: "https://foo123.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n    {\n        \"url\": \"https://foo123.com\"\n    }\n]", string(b))
}

func TestJSONFile_AppendKeepsOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "urls.json")
	s := NewJSONFile(path)
	ctx := context.Background()

	for _, u := range []string{"https://a.com", "https://b.com", "https://c.com"} {
		_, err := s.Append(ctx, Entry{URL: u})
		require.NoError(t, err)
	}

	urls, err := s.URLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, urls)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")
}

func TestJSONFile_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewJSONFile(path)
	_, err := s.Append(context.Background(), Entry{URL: "https://a.com"})
	require.Error(t, err)

	var oe *OpError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "store.decode", oe.Op)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(b), "a failed append must not rewrite the file")
}

func TestJSONFile_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSONFile(filepath.Join(t.TempDir(), "urls.json")).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestJSONFile_FailedWriteLeavesNoTmp(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"url":"https://keep.com"}]`), 0o644))
	// A directory in the tmp slot makes the write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	s := NewJSONFile(path)
	_, err := s.Append(context.Background(), Entry{URL: "https://new.com"})
	var op *OpError
	require.ErrorAs(t, err, &op)
	assert.Equal(t, "store.write", op.Op)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp should be removed after a failed write")

	urls, err := s.URLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://keep.com"}, urls)
}
