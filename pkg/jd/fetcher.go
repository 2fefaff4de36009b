// Package jd fetches a job description page and reduces it to the plain-text
// job context the prompts embed.
package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FetchTimeout bounds the HTTP fetch.
const FetchTimeout = 30 * time.Second

// FetchAndReduce retrieves the page at an http(s) URL and reduces it to plain
// text: script/style markup stripped, remaining tags stripped, whitespace
// collapsed, non-empty lines joined by newlines, restricted to printable
// ASCII so the text cannot break the LaTeX prompts downstream.
func FetchAndReduce(ctx context.Context, urlStr string) (content string, err error) {
	parsedURL, urlErr := url.Parse(urlStr)
	if urlErr != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") {
		err = errors.Errorf("not an http(s) URL: %s", urlStr)
		return content, err
	}

	var raw string
	raw, err = fetchFromURL(ctx, urlStr)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch job description from URL: %s", urlStr)
		return content, err
	}

	content = Reduce(raw)
	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves raw page content from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "resume-refresh/1.0")

	client := &http.Client{
		Timeout: FetchTimeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)
	return content, err
}

// Reduce turns raw HTML (or plain text) into the newline-joined non-empty
// lines the prompts consume.
func Reduce(raw string) (text string) {
	text = stripBasicHTML(raw)
	text = toPrintableASCII(text)

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = collapseSpaces(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	text = strings.Join(lines, "\n")
	return text
}

// stripBasicHTML removes basic HTML tags (simple implementation).
func stripBasicHTML(html string) (text string) {
	text = html

	// Remove script and style tags with their content
	text = removeTagAndContent(text, "script")
	text = removeTagAndContent(text, "style")

	// Remove HTML tags
	inTag := false
	result := strings.Builder{}
	for _, char := range text {
		if char == '<' {
			inTag = true
			continue
		}
		if char == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(char)
		}
	}

	text = result.String()
	return text
}

// removeTagAndContent removes a specific HTML tag and its content.
func removeTagAndContent(html, tag string) (result string) {
	result = html
	openTag := "<" + tag
	closeTag := "</" + tag + ">"

	for {
		startIdx := strings.Index(result, openTag)
		if startIdx == -1 {
			break
		}

		endIdx := strings.Index(result[startIdx:], closeTag)
		if endIdx == -1 {
			break
		}

		endIdx += startIdx + len(closeTag)
		result = result[:startIdx] + result[endIdx:]
	}

	return result
}

// toPrintableASCII drops characters the LaTeX prompt pipeline cannot
// represent, keeping newlines for line structure.
func toPrintableASCII(text string) (result string) {
	builder := strings.Builder{}
	for _, r := range text {
		if r == '\n' || (r >= 0x20 && r < 0x7f) {
			builder.WriteRune(r)
		}
	}
	result = builder.String()
	return result
}

// collapseSpaces squeezes runs of spaces and tabs into single spaces.
func collapseSpaces(line string) (collapsed string) {
	collapsed = strings.Join(strings.Fields(line), " ")
	return collapsed
}
