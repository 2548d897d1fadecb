package atlas

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListURL(t *testing.T) {
	listURL := ListURL("https://example.org", "31", []string{"0", "1", "2"})

	parsed, err := url.Parse(listURL)
	require.NoError(t, err)

	assert.Equal(t, "example.org", parsed.Host)
	assert.Equal(t, ListEndpoint, parsed.Path)
	assert.Equal(t, "31", parsed.Query().Get("FinalDiag"))
	assert.Equal(t, ",0,1,2", parsed.Query().Get("e"))
}

func TestListURLDefaults(t *testing.T) {
	listURL := ListURL("", "06", nil)

	parsed, err := url.Parse(listURL)
	require.NoError(t, err)

	assert.Equal(t, "screening.iarc.fr", parsed.Host)
	assert.Equal(t, "06", parsed.Query().Get("FinalDiag"))
	assert.False(t, parsed.Query().Has("e"))
}

func TestListURLTrailingSlash(t *testing.T) {
	listURL := ListURL("https://example.org/", "31", nil)
	parsed, err := url.Parse(listURL)
	require.NoError(t, err)
	assert.Equal(t, ListEndpoint, parsed.Path)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t,
		"https://example.org/detail.php?id=1",
		ResolveURL("https://example.org", "detail.php?id=1"))

	assert.Equal(t,
		"https://example.org/imgs/AABB1.jpg",
		ResolveURL("https://example.org/atlas", "/imgs/AABB1.jpg"))

	// Absolute hrefs pass through untouched
	assert.Equal(t,
		"https://other.example.com/x.jpg",
		ResolveURL("https://example.org", "https://other.example.com/x.jpg"))

	assert.Equal(t, "", ResolveURL("https://example.org", ""))
}
