package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_KindSurvivesWrapping(t *testing.T) {
	t.Parallel()

	base := NewTransport("namecom", "search", context.DeadlineExceeded)
	wrapped := fmt.Errorf("cycle 2: %w", base)

	assert.True(t, IsKind(wrapped, KindTransport))
	assert.False(t, IsKind(wrapped, KindApplication))
	assert.Equal(t, KindTransport, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, context.DeadlineExceeded))
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := NewApplication("cloudflare", "create zone", 400, "invalid zone name", `{"success":false}`)
	require.Error(t, err)
	assert.Equal(t, "cloudflare create zone: application (http 400): invalid zone name", err.Error())
}

func TestKindOf_NonRemote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindEmpty))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 20)
	assert.Equal(t, strings.Repeat("x", 5)+"...", Truncate(long, 5))
	assert.Equal(t, "short", Truncate("  short ", 10))
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	t.Parallel()

	// "é" is two bytes; cutting at 2 would split it.
	got := Truncate("aé-bad gateway", 2)
	assert.Equal(t, "a...", got)
	assert.True(t, utf8.ValidString(got))

	got = Truncate(strings.Repeat("日本", 300), 512)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 512+len("..."))
}
