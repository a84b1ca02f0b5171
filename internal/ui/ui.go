package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/export"
	"github.com/tartampluch/go-contactinfo/internal/importer"
	"github.com/tartampluch/go-contactinfo/internal/server"
	"github.com/zalando/go-keyring"
)

// ContactsApp encapsulates the UI state, preferences, and the services behind the windows.
type ContactsApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store    contact.Store
	Server   *server.ExportServer
	Importer *importer.Importer
	Clock    export.Clock

	SupportedLanguages []string

	listWindow     fyne.Window
	settingsWindow fyne.Window
	refreshList    func()

	infoMu      sync.Mutex
	infoWindows map[string]*infoWindow
}

// NewContactsApp constructs the application and wires dependencies.
func NewContactsApp(a fyne.App, ctx context.Context, store contact.Store, srv *server.ExportServer, fetcher importer.VCardFetcher) *ContactsApp {
	return &ContactsApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              store,
		Server:             srv,
		Importer:           &importer.Importer{Fetcher: fetcher},
		Clock:              export.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		infoWindows:        make(map[string]*infoWindow),
	}
}

// Run launches the export server and the main UI loop.
func (app *ContactsApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.Publish()
	app.ShowContactsWindow()
	app.App.Run()
}

// Publish rebuilds the export from the store and hands it to the server.
// It runs after every mutation so subscribed clients see edits immediately.
func (app *ContactsApp) Publish() {
	b := &export.Builder{Clock: app.Clock, FormatSummary: app.buildSummaryFormatter()}
	bundle, err := b.Build(app.Store.Contacts())
	if err != nil {
		slog.Error(config.ErrExportFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		return
	}
	app.Server.Publish(bundle)
}

// contactChanged runs after any store mutation: it republishes the export and
// rebuilds every open window, so no detail view keeps showing stale rows.
func (app *ContactsApp) contactChanged() {
	app.Publish()
	if app.refreshList != nil {
		app.refreshList()
	}

	// refresh must not run under infoMu: ShowContactInfo holds it while building.
	app.infoMu.Lock()
	open := make([]*infoWindow, 0, len(app.infoWindows))
	for _, iw := range app.infoWindows {
		open = append(open, iw)
	}
	app.infoMu.Unlock()

	for _, iw := range open {
		iw.ctrl.Invalidate()
		iw.refresh()
	}
}

// performImport pulls the configured source into the store.
func (app *ContactsApp) performImport(manual bool) {
	cfg := app.loadSourceConfig()

	n, err := app.Importer.ImportInto(app.Ctx, cfg, app.Store)
	if err != nil {
		slog.Error(config.ErrImportFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(importErrorKey(err))))
		}
		return
	}

	slog.Info(config.MsgImportDone, config.LogKeyCount, n, config.LogKeyComponent, config.CompUI)
	fyne.Do(app.contactChanged)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifImported)))
	}
}

// importErrorKey picks the notification for a failed import. Rejected credentials
// get their own message since the fix lives in the settings window.
func importErrorKey(err error) string {
	if errors.Is(err, importer.ErrUnauthorized) {
		return config.TKeyNotifAuthErr
	}
	return config.TKeyNotifImportErr
}

// loadSourceConfig assembles the import source from preferences and the keyring.
func (app *ContactsApp) loadSourceConfig() importer.SourceConfig {
	cfg := importer.SourceConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.ErrSecretUnreadable,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// buildSummaryFormatter returns a closure that localizes birthday event titles.
func (app *ContactsApp) buildSummaryFormatter() func(name string, age int, yearKnown bool) string {
	return func(name string, age int, yearKnown bool) string {
		key := config.TKeyEvtSummary
		data := map[string]interface{}{"Name": name}
		if yearKnown {
			key = config.TKeyEvtSummaryAge
			data["Age"] = age
			if age == 0 {
				key = config.TKeyEvtSummaryBrth
			}
		}

		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
			if err == nil && msg != "" {
				return msg
			}
		}

		switch key {
		case config.TKeyEvtSummaryAge:
			return fmt.Sprintf(config.FallbackSummaryAge, name, age)
		case config.TKeyEvtSummaryBrth:
			return fmt.Sprintf(config.FallbackSummaryBirth, name)
		default:
			return fmt.Sprintf(config.FallbackSummary, name)
		}
	}
}
