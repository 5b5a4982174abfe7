package extract

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// maxFetchBytes caps how much of a remote document is read.
const maxFetchBytes = 10 << 20 // 10 MiB

// FetchURL downloads a document and extracts its text. The format is
// auto-detected from the response Content-Type: HTML pages get title and
// script/style stripping, PDFs go through page extraction, anything else is
// treated as plain text.
//
// A network or HTTP failure does not return an error. Instead the title is
// the URL and the body is a synthetic "Error extracting content" message, so
// downstream chunking still produces a visible error chunk rather than a
// silently missing document.
func (e *Extractor) FetchURL(ctx context.Context, url string) (title, body string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.logger.Warn("invalid URL", "url", url, "err", err)
		return url, fmt.Sprintf("Error extracting content: %v", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Warn("failed to fetch URL", "url", url, "err", err)
		return url, fmt.Sprintf("Error extracting content: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.logger.Warn("unexpected status fetching URL", "url", url, "status", resp.StatusCode)
		return url, fmt.Sprintf("Error extracting content: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		e.logger.Warn("failed to read URL body", "url", url, "err", err)
		return url, fmt.Sprintf("Error extracting content: %v", err)
	}

	kind := kindForContentType(resp.Header.Get("Content-Type"))

	title, body, err = e.Extract(ctx, data, url, kind)
	if err != nil {
		e.logger.Warn("failed to extract fetched content", "url", url, "err", err)
		return url, fmt.Sprintf("Error extracting content: %v", err)
	}
	if title == "" {
		title = url
	}

	return title, body
}

// kindForContentType maps an HTTP Content-Type header to a Kind.
// Unknown types fall back to plain text.
func kindForContentType(contentType string) Kind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return KindText
	}

	switch {
	case mediaType == "text/html", mediaType == "application/xhtml+xml":
		return KindHTML
	case mediaType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(mediaType, "text/"):
		return KindText
	default:
		return KindText
	}
}
