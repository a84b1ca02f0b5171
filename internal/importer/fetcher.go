package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"slices"

	"github.com/tartampluch/go-contactinfo/internal/config"
)

var (
	// ErrUnauthorized is matched (errors.Is) by a 401 or 403 answer, so callers
	// can point the user at their credentials rather than at the network.
	ErrUnauthorized = errors.New(config.ErrUnauthorized)

	// ErrNotVCard is returned when the server answers with something that cannot be
	// an address book, typically an HTML login or error page.
	ErrNotVCard = errors.New(config.ErrNotVCard)

	// ErrTooLarge is returned by Read once the body passes the download limit.
	ErrTooLarge = errors.New(config.ErrTooLarge)
)

// StatusError reports a non-200 answer from the address book server.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", config.ErrHTTPStatus, e.Status)
}

// Unwrap maps authentication failures onto ErrUnauthorized.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// VCardFetcher retrieves a remote address book.
// Tests replace it with a mock to stay off the network.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads a vCard file or a CardDAV address book export.
type HTTPFetcher struct {
	Client *http.Client

	// MaxBytes caps the body. Zero means config.MaxHTTPResponseSize.
	MaxBytes int64
}

// NewHTTPFetcher returns an HTTPFetcher with the configured timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// Fetch downloads the address book at targetURL with optional Basic credentials.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	req, err := newAddressBookRequest(ctx, targetURL, user, pass)
	if err != nil {
		return nil, err
	}

	// Query strings may carry share tokens; keep them out of the logs.
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, req.URL.Scheme+"://"+req.URL.Host+req.URL.Path),
	)
	log.Debug("Requesting address book", slog.Bool("auth", user != "" || pass != ""))

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if err := checkAddressBookResponse(resp); err != nil {
		_ = resp.Body.Close()
		log.Warn("Address book download refused",
			slog.Int(config.LogKeyStatus, resp.StatusCode),
			slog.String(config.LogKeyError, err.Error()),
		)
		return nil, err
	}

	log.Info("Address book downloading",
		slog.Int64("content_length", resp.ContentLength),
		slog.String("content_type", resp.Header.Get(config.HeaderContentType)),
	)

	limit := f.MaxBytes
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	return newCappedBody(resp.Body, limit), nil
}

// newAddressBookRequest validates the URL and builds a GET asking for vCard first.
func newAddressBookRequest(ctx context.Context, targetURL, user, pass string) (*http.Request, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.AcceptVCard)

	// Anonymous shares must not receive an empty Authorization header.
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}
	return req, nil
}

// checkAddressBookResponse accepts a 200 whose Content-Type, when present,
// is one a vCard file is served with.
func checkAddressBookResponse(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	ct := resp.Header.Get(config.HeaderContentType)
	if ct == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil || !slices.Contains(config.VCardMediaTypes, mediaType) {
		return fmt.Errorf("%w: %s", ErrNotVCard, ct)
	}
	return nil
}

// cappedBody fails with ErrTooLarge instead of silently truncating the address book,
// which would otherwise import as a valid but incomplete list.
type cappedBody struct {
	r      io.Reader
	closer io.Closer
	left   int64
}

func newCappedBody(body io.ReadCloser, limit int64) *cappedBody {
	// One extra byte tells "exactly at the limit" from "over it".
	return &cappedBody{r: io.LimitReader(body, limit+1), closer: body, left: limit}
}

func (b *cappedBody) Read(p []byte) (int, error) {
	if b.left < 0 {
		return 0, ErrTooLarge
	}
	n, err := b.r.Read(p)
	b.left -= int64(n)
	if b.left < 0 {
		return n + int(b.left), ErrTooLarge
	}
	return n, err
}

func (b *cappedBody) Close() error {
	return b.closer.Close()
}
