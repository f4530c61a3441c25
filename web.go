package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// collectWebInputs fetches a page (and, with --follow-links, the pages it
// links to up to --link-depth) and turns each into a pre-loaded Input whose
// label is the URL. The counted text is the page converted to markdown, so
// the statistics reflect readable content rather than raw HTML.
func collectWebInputs(startURL string) ([]Input, error) {
	depth := 0
	if followLinks {
		depth = linkDepth
	}
	visited := make(map[string]bool)
	inputs := fetchWebRecursive(startURL, 0, depth, visited)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no readable content at %s", startURL)
	}
	return inputs, nil
}

// fetchWebRecursive fetches one URL, converts it to markdown, and follows
// same-page links up to maxDepth. Fetch and conversion failures are warnings
// so one bad link never sinks the traversal; a visited set breaks cycles.
func fetchWebRecursive(rawURL string, currentDepth, maxDepth int, visited map[string]bool) []Input {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		logger.Warn().Str("url", rawURL).Err(err).Msg("invalid URL")
		return nil
	}
	parsedURL.Fragment = "" // ignore fragments when de-duplicating
	cleanURL := parsedURL.String()

	if currentDepth > maxDepth || visited[cleanURL] {
		return nil
	}
	visited[cleanURL] = true
	logger.Debug().Str("url", cleanURL).Int("depth", currentDepth).Msg("fetching page")

	body, err := fetchHTML(cleanURL)
	if err != nil {
		logger.Warn().Str("url", cleanURL).Err(err).Msg("fetch failed")
		return nil
	}

	var inputs []Input
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(body))
	if err != nil {
		logger.Warn().Str("url", cleanURL).Err(err).Msg("HTML conversion failed")
	} else {
		inputs = append(inputs, Input{Label: cleanURL, Content: []byte(markdown)})
	}

	if currentDepth < maxDepth {
		for _, link := range extractLinks(body, parsedURL) {
			inputs = append(inputs, fetchWebRecursive(link, currentDepth+1, maxDepth, visited)...)
		}
	}
	return inputs
}

// fetchHTML fetches a URL and returns its body, rejecting non-HTML content.
func fetchHTML(pageURL string) ([]byte, error) {
	res, err := http.Get(pageURL)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
	return io.ReadAll(res.Body)
}

// extractLinks pulls the http/https anchor targets out of an HTML body,
// resolved against the page URL. Fragment, mailto, and javascript links are
// skipped.
func extractLinks(body []byte, pageURL *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		logger.Warn().Str("url", pageURL.String()).Err(err).Msg("link extraction failed")
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		link, exists := s.Attr("href")
		if !exists || link == "" || strings.HasPrefix(link, "#") ||
			strings.HasPrefix(strings.ToLower(link), "mailto:") ||
			strings.HasPrefix(strings.ToLower(link), "javascript:") {
			return
		}
		resolved, err := pageURL.Parse(link)
		if err != nil {
			return
		}
		if resolved.Scheme == "http" || resolved.Scheme == "https" {
			links = append(links, resolved.String())
		}
	})
	return links
}
