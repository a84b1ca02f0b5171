package ui

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/export"
)

// ShowContactsWindow displays the address book. It is the main window: closing it quits.
func (app *ContactsApp) ShowContactsWindow() {
	if app.listWindow != nil {
		app.listWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	w.Resize(fyne.NewSize(config.ListWindowWidth, config.ListWindowHeight))
	w.SetMaster()
	app.listWindow = w

	var entries []contact.Contact
	load := func() {
		entries = sortContacts(app.Store.Contacts())
	}
	load()
	slog.Info(config.LogMsgOpenList, config.LogKeyComponent, config.CompUI, config.LogKeyCount, len(entries))

	list := widget.NewList(
		func() int { return len(entries) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil, widget.NewLabel(""), widget.NewLabel(config.ListPlaceholder))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(entries) {
				return
			}
			row := o.(*fyne.Container)
			row.Objects[0].(*widget.Label).SetText(displayName(entries[id]))
			row.Objects[1].(*widget.Label).SetText(app.nextBirthdayText(entries[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		list.Unselect(id)
		if id < len(entries) {
			app.ShowContactInfo(entries[id].ID)
		}
	}

	app.refreshList = func() {
		load()
		list.Refresh()
	}

	toolbar := container.NewHBox(
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAddContact), theme.ContentAddIcon(), app.showNewContactDialog),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRefresh), theme.ViewRefreshIcon(), func() {
			go app.performImport(true)
		}),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow),
	)

	w.SetContent(container.NewBorder(toolbar, nil, nil, nil, list))
	w.SetOnClosed(func() {
		app.listWindow = nil
		app.refreshList = nil
	})
	w.Show()
}

func (app *ContactsApp) showNewContactDialog() {
	name := widget.NewEntry()
	items := []*widget.FormItem{widget.NewFormItem(app.GetMsg(config.TKeyLblName), name)}

	dialog.ShowForm(app.GetMsg(config.TKeyBtnAddContact), app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel), items, func(ok bool) {
		if !ok {
			return
		}
		c := contact.New(strings.TrimSpace(name.Text))
		if err := app.Store.SaveContact(c); err != nil {
			dialog.ShowError(err, app.listWindow)
			return
		}
		app.contactChanged()
		app.ShowContactInfo(c.ID)
	}, app.listWindow)
}

// nextBirthdayText renders the upcoming birthday of c.
func (app *ContactsApp) nextBirthdayText(c contact.Contact) string {
	if c.Birthday == nil {
		return config.FallbackNoBday
	}
	now := time.Now()
	if app.Clock != nil {
		now = app.Clock.Now()
	}
	next, _ := export.NextBirthday(now, *c.Birthday, c.BirthYearKnown)
	return next.Format(app.dateFormat())
}

// sortContacts orders contacts by name, case-insensitively, then by ID.
func sortContacts(contacts []contact.Contact) []contact.Contact {
	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := strings.ToLower(displayName(contacts[i])), strings.ToLower(displayName(contacts[j]))
		if a == b {
			return contacts[i].ID < contacts[j].ID
		}
		return a < b
	})
	return contacts
}

func displayName(c contact.Contact) string {
	if c.Name == "" {
		return config.FallbackName
	}
	return c.Name
}
