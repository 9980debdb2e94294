package shortener

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Breaking:  News!!  ", "breaking-news"},
		{"Already-Slugged", "already-slugged"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"!!!", "news"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title))
	}
}

func TestGenerateShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateShortID(SlugSuffixLength)
		require.NoError(t, err)
		assert.Len(t, id, SlugSuffixLength)
		for _, r := range id {
			assert.Contains(t, alphabet, string(r))
		}
		assert.False(t, seen[id], "short ids should not repeat")
		seen[id] = true
	}
}

func TestGenerateShortIDRejectsBadLength(t *testing.T) {
	_, err := GenerateShortID(0)
	assert.Error(t, err)
}

func TestNewsSlug(t *testing.T) {
	slug, err := NewsSlug("Hello World")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(slug, "hello-world-"))
	assert.Len(t, slug, len("hello-world-")+SlugSuffixLength)

	other, err := NewsSlug("Hello World")
	require.NoError(t, err)
	assert.NotEqual(t, slug, other)
}
