package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	body := []byte(`<html><body>
		<a href="/docs">Docs</a>
		<a href="https://other.example.org/page">Other</a>
		<a href="#section">Fragment</a>
		<a href="mailto:someone@example.com">Mail</a>
		<a href="javascript:void(0)">JS</a>
		<a href="ftp://example.com/file">FTP</a>
	</body></html>`)

	pageURL, err := url.Parse("https://example.com/start")
	require.NoError(t, err)

	links := extractLinks(body, pageURL)
	assert.Equal(t, []string{
		"https://example.com/docs",
		"https://other.example.org/page",
	}, links)
}

func TestExtractLinksNoAnchors(t *testing.T) {
	pageURL, err := url.Parse("https://example.com")
	require.NoError(t, err)
	assert.Empty(t, extractLinks([]byte("<html><body><p>plain</p></body></html>"), pageURL))
}
