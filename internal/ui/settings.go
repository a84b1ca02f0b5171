package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds the inputs read back on save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	pathEntry  *widget.Entry
	portEntry  *FilteredEntry
}

// ShowSettingsWindow displays the import source and server settings.
func (app *ContactsApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	sourceCard := app.buildSourceCard(w, sw)

	general := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry),
	)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.portEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	w.SetContent(container.NewPadded(container.NewVBox(
		sourceCard,
		general,
		container.NewGridWithColumns(config.LayoutColumnsDbl, btnCancel, btnSave),
	)))
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, 0))
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

func (app *ContactsApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.SupportedLanguages, nil),
		modeSelect: widget.NewSelect([]string{app.GetMsg(config.TKeyModeLocal), app.GetMsg(config.TKeyModeCardDAV)}, nil),
		urlEntry:   widget.NewEntry(),
		userEntry:  widget.NewEntry(),
		passEntry:  widget.NewPasswordEntry(),
		pathEntry:  widget.NewEntry(),
		portEntry:  NewNumericalEntry(),
	}
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.urlEntry.PlaceHolder = config.PlaceholderURL
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.portEntry.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.portEntry.Validator = app.validatePort
	return sw
}

// validatePort returns a localized error for an empty, non-numeric or out-of-range port.
func (app *ContactsApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

func (app *ContactsApp) buildSourceCard(w fyne.Window, sw *settingsWidgets) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	webForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	sw.modeSelect.OnChanged = func(mode string) {
		if mode == app.GetMsg(config.TKeyModeCardDAV) {
			webForm.Show()
			localForm.Hide()
		} else {
			webForm.Hide()
			localForm.Show()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeWeb {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the preferences and re-imports from the new source.
// A changed port takes effect on the next start.
func (app *ContactsApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Saving preferences", config.LogKeyComponent, config.CompUISet)

	mode := config.SourceModeLocal
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeCardDAV) {
		mode = config.SourceModeWeb
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)
	if sw.portEntry.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.portEntry.Text)
	}

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	app.UpdateLocalizer()
	go app.performImport(true)
}
