package importer_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/importer"
)

// TestHTTPFetcher_DownloadsAddressBook checks credentials, User-Agent and body.
func TestHTTPFetcher_DownloadsAddressBook(t *testing.T) {
	const book = "BEGIN:VCARD\nVERSION:3.0\nFN:Remote\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "carol", user)
		assert.Equal(t, "s3cret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, _ = io.WriteString(w, book)
	}))
	defer ts.Close()

	rc, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/card.vcf?token=x", "carol", "s3cret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, book, string(body))
}

func TestHTTPFetcher_NoCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok, "Anonymous fetch must not send Authorization")
	}))
	defer ts.Close()

	rc, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusBadGateway} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer ts.Close()

			rc, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), http.StatusText(status))
		})
	}
}

func TestHTTPFetcher_ContextDeadline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := importer.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHTTPFetcher_RejectsBadURLs(t *testing.T) {
	f := importer.NewHTTPFetcher()

	_, err := f.Fetch(context.Background(), string([]byte{0x7f}), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrInvalidURL)

	_, err = f.Fetch(context.Background(), "file:///etc/passwd", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrProtocol)
}

func TestHTTPFetcher_AsksForVCard(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, config.AcceptVCard, r.Header.Get(config.HeaderAccept))
		w.Header().Set(config.HeaderContentType, config.MimeTextVCard)
		_, _ = io.WriteString(w, "BEGIN:VCARD\nEND:VCARD")
	}))
	defer ts.Close()

	rc, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_ContentTypes(t *testing.T) {
	tests := []struct {
		contentType string
		wantErr     bool
	}{
		{"text/vcard; charset=utf-8", false},
		{"text/x-vcard", false},
		{"text/plain", false},
		{"application/octet-stream", false},
		{"text/html; charset=utf-8", true},
		{"application/json", true},
		{"not a media type;;", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(config.HeaderContentType, tt.contentType)
				_, _ = io.WriteString(w, "BEGIN:VCARD\nEND:VCARD")
			}))
			defer ts.Close()

			rc, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
			if tt.wantErr {
				assert.ErrorIs(t, err, importer.ErrNotVCard)
				assert.Nil(t, rc)
				return
			}
			require.NoError(t, err)
			_ = rc.Close()
		})
	}
}

func TestHTTPFetcher_BadCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "carol", "wrong")
		ts.Close()

		assert.ErrorIs(t, err, importer.ErrUnauthorized, "status %d", status)
		var se *importer.StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, status, se.Code)
	}

	// Other failures are not credential problems.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	_, err := importer.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, importer.ErrUnauthorized)
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "0123456789")
	}))
	defer ts.Close()

	atLimit := importer.NewHTTPFetcher()
	atLimit.MaxBytes = 10
	rc, err := atLimit.Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	_ = rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(body))

	over := importer.NewHTTPFetcher()
	over.MaxBytes = 4
	rc, err = over.Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	body, err = io.ReadAll(rc)
	_ = rc.Close()
	assert.ErrorIs(t, err, importer.ErrTooLarge)
	assert.Equal(t, "0123", string(body), "Nothing past the limit is returned")
}
