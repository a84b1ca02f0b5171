package ui

import (
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/contactinfo"
	"github.com/tartampluch/go-contactinfo/internal/fieldmodel"
)

// addressForm groups the entries of a postal address.
type addressForm struct {
	street, locality, region, postalCode, country *widget.Entry
}

func newAddressForm(a contact.Address) *addressForm {
	f := &addressForm{
		street:     widget.NewMultiLineEntry(),
		locality:   widget.NewEntry(),
		region:     widget.NewEntry(),
		postalCode: widget.NewEntry(),
		country:    widget.NewEntry(),
	}
	f.street.SetText(a.Street)
	f.locality.SetText(a.Locality)
	f.region.SetText(a.Region)
	f.postalCode.SetText(a.PostalCode)
	f.country.SetText(a.Country)
	return f
}

func (f *addressForm) items(msg func(string) string) []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem(msg(config.TKeyLblStreet), f.street),
		widget.NewFormItem(msg(config.TKeyLblLocality), f.locality),
		widget.NewFormItem(msg(config.TKeyLblRegion), f.region),
		widget.NewFormItem(msg(config.TKeyLblPostalCode), f.postalCode),
		widget.NewFormItem(msg(config.TKeyLblCountry), f.country),
	}
}

func (f *addressForm) address() contact.Address {
	return contact.Address{
		Street:     f.street.Text,
		Locality:   f.locality.Text,
		Region:     f.region.Text,
		PostalCode: f.postalCode.Text,
		Country:    f.country.Text,
	}
}

// showEditDialog opens the form matching target, pre-filled from the current model.
func (iw *infoWindow) showEditDialog(target fieldmodel.EditTarget) {
	msg := iw.app.GetMsg
	m := iw.ctrl.Model()

	labelEntry := widget.NewEntry()
	var items []*widget.FormItem
	var read func() contactinfo.Input

	switch target.Kind {
	case fieldmodel.EditName:
		e := widget.NewEntry()
		e.SetText(m.DisplayName())
		items = []*widget.FormItem{widget.NewFormItem(msg(config.TKeyLblName), e)}
		read = func() contactinfo.Input { return contactinfo.Input{Text: e.Text} }

	case fieldmodel.EditBirthday:
		e := widget.NewEntry()
		e.PlaceHolder = config.PlaceholderBday
		if bday, yearKnown, ok := m.Birthday(); ok {
			e.SetText(contact.FormatBirthday(bday, yearKnown))
		}
		item := widget.NewFormItem(msg(config.TKeyLblBirthday), e)
		item.HintText = msg(config.TKeyHelpBirthday)
		items = []*widget.FormItem{item}
		read = func() contactinfo.Input { return contactinfo.Input{Text: e.Text} }

	case fieldmodel.EditPhone:
		rec, err := m.Item(int(fieldmodel.SectionPhones), target.Row)
		if err != nil {
			dialog.ShowError(err, iw.win)
			return
		}
		p := rec.(contact.Phone)
		e := NewPhoneEntry()
		e.SetText(p.Number)
		labelEntry.SetText(p.Label)
		items = []*widget.FormItem{
			widget.NewFormItem(msg(config.TKeyLblPhone), e),
			widget.NewFormItem(msg(config.TKeyLblLabel), labelEntry),
		}
		read = func() contactinfo.Input { return contactinfo.Input{Text: e.Text, Label: labelEntry.Text} }

	case fieldmodel.EditEmail:
		rec, err := m.Item(int(fieldmodel.SectionEmails), target.Row)
		if err != nil {
			dialog.ShowError(err, iw.win)
			return
		}
		em := rec.(contact.Email)
		e := widget.NewEntry()
		e.SetText(em.Address)
		labelEntry.SetText(em.Label)
		items = []*widget.FormItem{
			widget.NewFormItem(msg(config.TKeyLblEmail), e),
			widget.NewFormItem(msg(config.TKeyLblLabel), labelEntry),
		}
		read = func() contactinfo.Input { return contactinfo.Input{Text: e.Text, Label: labelEntry.Text} }

	default:
		rec, err := m.Item(int(fieldmodel.SectionAddresses), target.Row)
		if err != nil {
			dialog.ShowError(err, iw.win)
			return
		}
		a := rec.(contact.Address)
		form := newAddressForm(a)
		labelEntry.SetText(a.Label)
		items = append(form.items(msg), widget.NewFormItem(msg(config.TKeyLblLabel), labelEntry))
		read = func() contactinfo.Input {
			return contactinfo.Input{Address: form.address(), Label: labelEntry.Text}
		}
	}

	dialog.ShowForm(msg(config.TKeyBtnEdit), msg(config.TKeyBtnSave), msg(config.TKeyBtnCancel), items, func(ok bool) {
		if !ok {
			return
		}
		if err := iw.ctrl.Apply(target, read()); err != nil {
			dialog.ShowError(err, iw.win)
		}
	}, iw.win)
}

// showAddDialog collects a new phone, email or address for section.
func (iw *infoWindow) showAddDialog(section fieldmodel.Section) {
	msg := iw.app.GetMsg
	labelEntry := widget.NewEntry()
	labelItem := widget.NewFormItem(msg(config.TKeyLblLabel), labelEntry)

	var items []*widget.FormItem
	var submit func() error

	switch section {
	case fieldmodel.SectionPhones:
		e := NewPhoneEntry()
		items = []*widget.FormItem{widget.NewFormItem(msg(config.TKeyLblPhone), e), labelItem}
		submit = func() error { return iw.ctrl.AddPhone(contactinfo.Input{Text: e.Text, Label: labelEntry.Text}) }
	case fieldmodel.SectionEmails:
		e := widget.NewEntry()
		items = []*widget.FormItem{widget.NewFormItem(msg(config.TKeyLblEmail), e), labelItem}
		submit = func() error { return iw.ctrl.AddEmail(contactinfo.Input{Text: e.Text, Label: labelEntry.Text}) }
	case fieldmodel.SectionAddresses:
		form := newAddressForm(contact.Address{})
		items = append(form.items(msg), labelItem)
		submit = func() error {
			return iw.ctrl.AddAddress(contactinfo.Input{Address: form.address(), Label: labelEntry.Text})
		}
	default:
		return
	}

	dialog.ShowForm(msg(config.TKeyBtnAdd), msg(config.TKeyBtnSave), msg(config.TKeyBtnCancel), items, func(ok bool) {
		if !ok {
			return
		}
		if err := submit(); err != nil {
			dialog.ShowError(err, iw.win)
		}
	}, iw.win)
}
