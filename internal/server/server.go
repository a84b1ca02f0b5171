// Package server publishes the latest export over HTTP on the loopback interface.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/export"
)

// cacheItem is one rendered document plus its HTTP validators.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // http.TimeFormat
}

// feed serves a single route. Reads are lock-free; Publish swaps the pointer.
type feed struct {
	route string
	mime  string
	cache atomic.Pointer[cacheItem]
}

// ExportServer serves the address book and the birthday calendar.
type ExportServer struct {
	Port string

	contacts  feed
	birthdays feed
}

// NewExportServer creates a server bound to localhost:port once started.
func NewExportServer(port string) *ExportServer {
	return &ExportServer{
		Port:      port,
		contacts:  feed{route: config.RouteContacts, mime: config.MimeTextVCard},
		birthdays: feed{route: config.RouteBirthdays, mime: config.MimeTextCalendar},
	}
}

// Handler returns the route mux. Unknown paths get the mux's 404.
func (s *ExportServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.contacts.route, &s.contacts)
	mux.Handle(s.birthdays.route, &s.birthdays)
	return mux
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *ExportServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Publish atomically replaces both documents with the given generation.
func (s *ExportServer) Publish(b export.Bundle) {
	built := b.BuiltAt
	if built.IsZero() {
		built = time.Now()
	}
	lastMod := built.UTC().Format(http.TimeFormat)

	s.contacts.store(b.VCard, lastMod)
	s.birthdays.store(b.ICS, lastMod)
}

func (f *feed) store(data []byte, lastMod string) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	f.cache.Store(&cacheItem{data: data, etag: etag, lastModified: lastMod})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, f.route,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// ServeHTTP serves the cached document with conditional GET support.
func (f *feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := f.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	h := w.Header()
	h.Set(config.HeaderContentType, f.mime)
	h.Set(config.HeaderXContentType, config.MimeNoSniff)
	h.Set(config.HeaderCacheControl, config.CacheControlPrivate)
	h.Set(config.HeaderETag, item.etag)
	h.Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyRoute, f.route,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified applies If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *cacheItem) bool {
	if matches := r.Header.Values(config.HeaderIfNoneMatch); len(matches) > 0 {
		return etagListMatches(strings.Join(matches, ","), item.etag)
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// etagListMatches evaluates an If-None-Match list with the weak comparison GET and
// HEAD call for: "*" matches any current entity and W/ prefixes are ignored.
func etagListMatches(list, etag string) bool {
	want := strings.TrimPrefix(etag, config.ETagWeakPrefix)
	for _, candidate := range strings.Split(list, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == config.ETagAny {
			return true
		}
		if strings.TrimPrefix(candidate, config.ETagWeakPrefix) == want {
			return true
		}
	}
	return false
}
