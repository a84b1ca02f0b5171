package ui

import (
	"image/color"
	"log/slog"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/contactinfo"
	"github.com/tartampluch/go-contactinfo/internal/fieldmodel"
)

// infoWindow is the detail view of one contact.
type infoWindow struct {
	app  *ContactsApp
	ctrl *contactinfo.Controller
	win  fyne.Window

	rows   []infoRow
	list   *widget.List
	header *canvas.Rectangle
	title  *canvas.Text
}

// ShowContactInfo opens the detail window of id, or focuses it if already open.
func (app *ContactsApp) ShowContactInfo(id string) {
	app.infoMu.Lock()
	defer app.infoMu.Unlock()

	if iw, ok := app.infoWindows[id]; ok {
		iw.win.RequestFocus()
		return
	}

	slog.Info(config.LogMsgOpenInfo, config.LogKeyComponent, config.CompUI, config.LogKeyContact, id)

	iw := &infoWindow{app: app}
	// contactChanged refreshes this window along with the others.
	iw.ctrl = contactinfo.New(app.Store, id, contactinfo.WithOnUpdate(app.contactChanged))
	iw.build()

	app.infoWindows[id] = iw
	iw.win.SetOnClosed(func() {
		app.infoMu.Lock()
		delete(app.infoWindows, id)
		app.infoMu.Unlock()
	})
	iw.win.Show()
}

func (iw *infoWindow) build() {
	app := iw.app
	m := iw.ctrl.Model()

	iw.win = app.App.NewWindow(m.DisplayName())
	iw.win.Resize(fyne.NewSize(config.InfoWindowWidth, config.InfoWindowHeight))

	iw.header = canvas.NewRectangle(hexColor(m.AccentColor()))
	iw.header.SetMinSize(fyne.NewSize(0, config.HeaderHeight))
	iw.title = canvas.NewText(m.DisplayName(), color.White)
	iw.title.TextSize = config.HeaderTextSize
	iw.title.TextStyle = fyne.TextStyle{Bold: true}

	iw.list = widget.NewList(
		func() int { return len(iw.rows) },
		func() fyne.CanvasObject { return newRowItem() },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id < len(iw.rows) {
				iw.bindRow(o.(*rowItem), iw.rows[id])
			}
		},
	)
	iw.list.OnSelected = func(id widget.ListItemID) {
		iw.list.Unselect(id)
		if id < len(iw.rows) && !iw.rows[id].Header {
			iw.open(iw.rows[id])
		}
	}

	colorBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnColor), theme.ColorPaletteIcon(), func() {
		if _, err := iw.ctrl.ChangeColor(); err != nil {
			dialog.ShowError(err, iw.win)
		}
	})
	deleteBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), iw.confirmDeleteContact)
	deleteBtn.Importance = widget.DangerImportance

	top := container.NewStack(iw.header, container.NewPadded(iw.title))
	bottom := container.NewPadded(container.NewGridWithColumns(config.LayoutColumnsDbl, colorBtn, deleteBtn))
	iw.win.SetContent(container.NewBorder(top, bottom, nil, nil, iw.list))

	iw.refresh()
}

// refresh rebuilds the rows from a fresh model.
func (iw *infoWindow) refresh() {
	m := iw.ctrl.Model()
	iw.rows = flattenModel(m, iw.app.GetMsg, iw.app.dateFormat())

	iw.header.FillColor = hexColor(m.AccentColor())
	iw.header.Refresh()
	iw.title.Text = m.DisplayName()
	iw.title.Refresh()
	iw.win.SetTitle(m.DisplayName())
	iw.list.Refresh()
}

func (iw *infoWindow) bindRow(item *rowItem, row infoRow) {
	m := iw.ctrl.Model()
	section := int(row.Section)

	item.text.TextStyle = fyne.TextStyle{Bold: row.Header}
	item.text.SetText(row.Text)
	item.label.SetText(row.Label)
	item.swatch.FillColor = hexColor(m.EditColor())

	if row.Header {
		item.edit.Hide()
		item.swatch.Hide()
		item.del.Hide()
		if row.Section.IsListBacked() && m.Loaded() {
			item.add.Show()
			item.add.OnTapped = func() { iw.showAddDialog(row.Section) }
		} else {
			item.add.Hide()
		}
		return
	}

	item.add.Hide()
	item.swatch.Show()
	item.edit.Show()
	item.edit.OnTapped = func() { iw.showEditDialog(m.ClassifyAction(section, row.Row)) }

	if m.IsEditableOnly(section) {
		item.del.Hide()
	} else {
		item.del.Show()
		target := m.ClassifyRowAction(section, row.Row)
		item.del.OnTapped = func() { iw.confirmDelete(target) }
	}
	item.Refresh()
}

func (iw *infoWindow) confirmDelete(target fieldmodel.DeleteTarget) {
	dialog.ShowConfirm(iw.app.GetMsg(config.TKeyBtnDelete), iw.app.GetMsg(config.TKeyConfirmDelete), func(ok bool) {
		if !ok {
			return
		}
		if err := iw.ctrl.Delete(target); err != nil {
			dialog.ShowError(err, iw.win)
		}
	}, iw.win)
}

func (iw *infoWindow) confirmDeleteContact() {
	dialog.ShowConfirm(iw.app.GetMsg(config.TKeyBtnDelete), iw.app.GetMsg(config.TKeyConfirmDelete), func(ok bool) {
		if !ok {
			return
		}
		if err := iw.app.Store.DeleteContact(iw.ctrl.ContactID()); err != nil {
			dialog.ShowError(err, iw.win)
			return
		}
		iw.app.contactChanged()
		iw.win.Close()
	}, iw.win)
}

// open launches the external action of a tapped row.
func (iw *infoWindow) open(row infoRow) {
	m := iw.ctrl.Model()
	u := selectURL(m, m.ClassifySelect(int(row.Section), row.Row))
	if u == nil {
		return
	}
	if err := iw.app.App.OpenURL(u); err != nil {
		slog.Warn(config.ErrOpenURL, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
	}
}

// selectURL resolves a select target to the URL handed to the OS.
func selectURL(m *fieldmodel.Model, sel fieldmodel.SelectTarget) *url.URL {
	var section fieldmodel.Section
	switch sel.Kind {
	case fieldmodel.OpenMessages:
		section = fieldmodel.SectionPhones
	case fieldmodel.OpenMail:
		section = fieldmodel.SectionEmails
	case fieldmodel.OpenMaps:
		section = fieldmodel.SectionAddresses
	default:
		return nil
	}

	rec, err := m.Item(int(section), sel.Row)
	if err != nil {
		return nil
	}
	switch r := rec.(type) {
	case contact.Phone:
		return r.URI()
	case contact.Email:
		return r.URI()
	case contact.Address:
		return r.MapURI()
	}
	return nil
}

// hexColor parses a stored color, using the theme primary color for bad input.
func hexColor(hex string) color.Color {
	c, err := contact.ParseColor(hex)
	if err != nil {
		return theme.Color(theme.ColorNamePrimary)
	}
	return c
}

// rowItem is the reusable list cell of the detail view.
type rowItem struct {
	widget.BaseWidget

	text   *widget.Label
	label  *widget.Label
	swatch *canvas.Rectangle
	add    *widget.Button
	edit   *widget.Button
	del    *widget.Button

	content fyne.CanvasObject
}

func newRowItem() *rowItem {
	item := &rowItem{
		text:   widget.NewLabel(config.ListPlaceholder),
		label:  widget.NewLabel(""),
		swatch: canvas.NewRectangle(color.Transparent),
		add:    widget.NewButtonWithIcon("", theme.ContentAddIcon(), nil),
		edit:   widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), nil),
		del:    widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
	}
	item.label.TextStyle = fyne.TextStyle{Italic: true}
	item.edit.Importance = widget.LowImportance
	item.del.Importance = widget.LowImportance
	item.swatch.CornerRadius = theme.InputRadiusSize()

	actions := container.NewHBox(item.add, container.NewStack(item.swatch, item.edit), item.del)
	item.content = container.NewBorder(nil, nil, nil, actions, container.NewHBox(item.text, item.label))
	item.ExtendBaseWidget(item)
	return item
}

func (r *rowItem) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.content)
}
