package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalpoint/docbase/core"
)

func TestKindForExtension(t *testing.T) {
	tests := []struct {
		ext     string
		want    Kind
		wantErr bool
	}{
		{"pdf", KindPDF, false},
		{"PDF", KindPDF, false},
		{".pdf", KindPDF, false},
		{"txt", KindText, false},
		{"text", KindText, false},
		{"docx", 0, true},
		{"exe", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			kind, err := KindForExtension(tt.ext)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestExtract_PlainText(t *testing.T) {
	e := New()

	t.Run("valid utf8", func(t *testing.T) {
		title, body, err := e.Extract(context.Background(), []byte("hello world"), "notes.txt", KindText)
		require.NoError(t, err)
		assert.Equal(t, "notes.txt", title)
		assert.Equal(t, "hello world", body)
	})

	t.Run("invalid utf8 replaced", func(t *testing.T) {
		_, body, err := e.Extract(context.Background(), []byte{0x68, 0x69, 0xff, 0xfe}, "bin.txt", KindText)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(body, "hi"))
		assert.Contains(t, body, "�")
	})
}

func TestExtract_HTML(t *testing.T) {
	e := New()

	t.Run("title and text", func(t *testing.T) {
		html := `<html><head><title>My Page</title><style>p{color:red}</style></head>
			<body><script>alert(1)</script><p>First   paragraph.</p><p>Second one.</p></body></html>`
		title, body, err := e.Extract(context.Background(), []byte(html), "fallback", KindHTML)
		require.NoError(t, err)
		assert.Equal(t, "My Page", title)
		assert.Contains(t, body, "First paragraph.")
		assert.Contains(t, body, "Second one.")
		assert.NotContains(t, body, "alert")
		assert.NotContains(t, body, "color:red")
	})

	t.Run("missing title falls back", func(t *testing.T) {
		title, _, err := e.Extract(context.Background(), []byte("<p>text only</p>"), "http://example.com", KindHTML)
		require.NoError(t, err)
		assert.Equal(t, "http://example.com", title)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		_, body, err := e.Extract(context.Background(), []byte("<body>a \n\n  b\t\tc</body>"), "x", KindHTML)
		require.NoError(t, err)
		assert.Equal(t, "a b c", body)
	})
}

func TestExtract_UnsupportedKind(t *testing.T) {
	e := New()
	_, _, err := e.Extract(context.Background(), []byte("x"), "x", Kind(99))
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
}

func TestExtract_PDFGarbage(t *testing.T) {
	e := New()

	// Not a real PDF: extraction must degrade to a descriptive body, not fail.
	_, body, err := e.Extract(context.Background(), []byte("not a pdf at all"), "bad.pdf", KindPDF)
	require.NoError(t, err)
	assert.Contains(t, body, "Error extracting content")
}

func TestFetchURL(t *testing.T) {
	t.Run("html page", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html><head><title>Fetched</title></head><body>page body text</body></html>"))
		}))
		defer srv.Close()

		e := New()
		title, body := e.FetchURL(context.Background(), srv.URL)
		assert.Equal(t, "Fetched", title)
		assert.Contains(t, body, "page body text")
	})

	t.Run("plain text response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("just words"))
		}))
		defer srv.Close()

		e := New()
		title, body := e.FetchURL(context.Background(), srv.URL)
		assert.Equal(t, srv.URL, title)
		assert.Equal(t, "just words", body)
	})

	t.Run("server error yields synthetic body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		e := New()
		title, body := e.FetchURL(context.Background(), srv.URL)
		assert.Equal(t, srv.URL, title)
		assert.Contains(t, body, "Error extracting content")
	})

	t.Run("unreachable host yields synthetic body", func(t *testing.T) {
		e := New()
		title, body := e.FetchURL(context.Background(), "http://127.0.0.1:1/nothing")
		assert.Equal(t, "http://127.0.0.1:1/nothing", title)
		assert.Contains(t, body, "Error extracting content")
	})
}

func TestKindForContentType(t *testing.T) {
	assert.Equal(t, KindHTML, kindForContentType("text/html; charset=utf-8"))
	assert.Equal(t, KindPDF, kindForContentType("application/pdf"))
	assert.Equal(t, KindText, kindForContentType("text/plain"))
	assert.Equal(t, KindText, kindForContentType("application/octet-stream"))
	assert.Equal(t, KindText, kindForContentType(""))
}
