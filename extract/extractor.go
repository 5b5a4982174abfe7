package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/vitalpoint/docbase/core"
)

// Kind identifies the format of raw document bytes.
type Kind int

const (
	// KindText is plain UTF-8 text.
	KindText Kind = iota + 1
	// KindHTML is an HTML page.
	KindHTML
	// KindPDF is a PDF file.
	KindPDF
)

// defaultFetchTimeout bounds URL fetches so a slow host fails fast instead
// of hanging an ingestion request.
const defaultFetchTimeout = 10 * time.Second

var whitespaceRE = regexp.MustCompile(`\s+`)

// Extractor converts raw document bytes into a title and a plain-text body.
// It is safe for concurrent use.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithHTTPClient sets a custom HTTP client for URL fetching.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Extractor. The embedded HTTP client uses a bounded timeout
// so extraction never hangs on a slow host.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client: &http.Client{Timeout: defaultFetchTimeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// KindForExtension maps a file extension (without dot, case-insensitive) to
// a Kind. Only "pdf" and "txt" uploads are accepted; anything else returns
// core.ErrUnsupportedFormat before any work begins.
func KindForExtension(ext string) (Kind, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "pdf":
		return KindPDF, nil
	case "txt", "text":
		return KindText, nil
	default:
		return 0, fmt.Errorf("%w: extension %q", core.ErrUnsupportedFormat, ext)
	}
}

// Extract converts raw bytes of the given kind into (title, body).
// The name parameter is used as the title for text and PDF sources.
//
// Partial results are preferred over total failure: a PDF with unreadable
// pages still yields the readable ones, and only a document with zero
// extractable content is reported as an error.
func (e *Extractor) Extract(ctx context.Context, data []byte, name string, kind Kind) (title, body string, err error) {
	switch kind {
	case KindText:
		return name, strings.ToValidUTF8(string(data), "�"), nil
	case KindHTML:
		return e.extractHTML(data, name)
	case KindPDF:
		return name, e.extractPDF(data), nil
	default:
		return "", "", fmt.Errorf("%w: kind %d", core.ErrUnsupportedFormat, kind)
	}
}

// collapseWhitespace folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
