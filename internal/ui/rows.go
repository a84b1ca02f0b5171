package ui

import (
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/fieldmodel"
)

// infoRow is one line of the flattened contact-info list.
// Header rows carry a section title and no data row.
type infoRow struct {
	Section fieldmodel.Section
	Row     int
	Header  bool
	Text    string
	Label   string
}

var sectionTitleKeys = map[fieldmodel.Section]string{
	fieldmodel.SectionName:      config.TKeySecName,
	fieldmodel.SectionBirthday:  config.TKeySecBirthday,
	fieldmodel.SectionPhones:    config.TKeySecPhones,
	fieldmodel.SectionEmails:    config.TKeySecEmails,
	fieldmodel.SectionAddresses: config.TKeySecAddresses,
}

// flattenModel lays the five sections out as a single list: a header per
// section followed by its rows. An unloaded model still yields the headers.
func flattenModel(m *fieldmodel.Model, msg func(string) string, dateLayout string) []infoRow {
	var rows []infoRow
	for s := 0; s < m.SectionCount(); s++ {
		section := fieldmodel.Section(s)
		rows = append(rows, infoRow{Section: section, Header: true, Text: msg(sectionTitleKeys[section])})

		n, err := m.RowCount(s)
		if err != nil {
			continue
		}
		for r := 0; r < n; r++ {
			rows = append(rows, rowFor(m, section, r, msg, dateLayout))
		}
	}
	return rows
}

func rowFor(m *fieldmodel.Model, section fieldmodel.Section, row int, msg func(string) string, dateLayout string) infoRow {
	out := infoRow{Section: section, Row: row}

	switch section {
	case fieldmodel.SectionName:
		out.Text = m.DisplayName()
	case fieldmodel.SectionBirthday:
		bday, yearKnown, ok := m.Birthday()
		switch {
		case !ok:
			out.Text = msg(config.TKeyNoBirthday)
		case yearKnown:
			out.Text = bday.Format(dateLayout)
		default:
			out.Text = bday.Format(config.DateFormatNoYear)
		}
	default:
		rec, err := m.Item(int(section), row)
		if err != nil {
			return out
		}
		out.Text = rec.Display()
		switch r := rec.(type) {
		case contact.Phone:
			out.Label = r.Label
		case contact.Email:
			out.Label = r.Label
		case contact.Address:
			out.Label = r.Label
		}
	}
	return out
}
