// Package importer loads contacts from a local vCard file or a CardDAV/WebDAV URL.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
)

// SourceConfig describes where the address book comes from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Importer reads contacts from the configured source.
type Importer struct {
	Fetcher VCardFetcher
}

// Import opens the source, decodes every vCard and returns the contacts.
func (im *Importer) Import(ctx context.Context, cfg SourceConfig) ([]contact.Contact, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompImporter,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgImportStarted)

	reader, err := im.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contacts, err := contact.DecodeVCards(reader)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info(config.MsgImportDone,
		config.LogKeyTotal, len(contacts),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return contacts, nil
}

// ImportInto imports contacts and saves them into store in one batch, replacing
// same-ID entries. A failed save leaves the store as it was.
func (im *Importer) ImportInto(ctx context.Context, cfg SourceConfig, store contact.Store) (int, error) {
	contacts, err := im.Import(ctx, cfg)
	if err != nil {
		return 0, err
	}
	if err := store.SaveContacts(contacts); err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrImportFailed, err)
	}
	return len(contacts), nil
}

func (im *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}
