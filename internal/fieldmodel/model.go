// Package fieldmodel projects a contact onto the five-section list shown by the
// contact-info screen and classifies row gestures into edit, delete and select targets.
//
// A Model is a read-only snapshot. After any mutation of the underlying contact the
// caller must build a new Model; row indices from an older Model are stale.
package fieldmodel

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
)

// ErrOutOfRange is returned for a section outside [0,4] or a row past the end of its list.
var ErrOutOfRange = errors.New(config.ErrOutOfRange)

// Model answers the structural queries of the contact-info list.
type Model struct {
	contact *contact.Contact
}

// New returns a model over c. A nil contact means "not loaded".
// The model keeps its own copy so later store mutations cannot change its answers.
func New(c *contact.Contact) *Model {
	if c == nil {
		return &Model{}
	}
	snap := c.Clone()
	return &Model{contact: &snap}
}

// Loaded reports whether a contact backs the model.
func (m *Model) Loaded() bool {
	return m.contact != nil
}

// ContactID returns the identifier of the loaded contact, or "".
func (m *Model) ContactID() string {
	if m.contact == nil {
		return ""
	}
	return m.contact.ID
}

// SectionCount is always five, regardless of the contact state.
func (m *Model) SectionCount() int {
	return config.SectionCount
}

// RowCount returns the number of rows of section.
func (m *Model) RowCount(section int) (int, error) {
	if err := checkSection(section); err != nil {
		return 0, err
	}
	if m.contact == nil {
		return 0, nil
	}

	switch Section(section) {
	case SectionName, SectionBirthday:
		return config.SingleRow, nil
	case SectionPhones:
		return len(m.contact.Phones), nil
	case SectionEmails:
		return len(m.contact.Emails), nil
	default:
		return len(m.contact.Addresses), nil
	}
}

// DisplayName returns the contact name or config.FallbackName.
func (m *Model) DisplayName() string {
	if m.contact == nil || m.contact.Name == "" {
		return config.FallbackName
	}
	return m.contact.Name
}

// AccentColor returns the header color, falling back to config.DefaultNavColor.
func (m *Model) AccentColor() string {
	if m.contact == nil || m.contact.Color == "" {
		return config.DefaultNavColor
	}
	return m.contact.Color
}

// EditColor returns the Edit action highlight, falling back to config.DefaultEditColor.
func (m *Model) EditColor() string {
	if m.contact == nil || m.contact.Color == "" {
		return config.DefaultEditColor
	}
	return m.contact.Color
}

// Birthday returns the birthday and whether its year is known. ok is false when unset.
func (m *Model) Birthday() (birthday time.Time, yearKnown, ok bool) {
	if m.contact == nil || m.contact.Birthday == nil {
		return time.Time{}, false, false
	}
	return *m.contact.Birthday, m.contact.BirthYearKnown, true
}

// ItemsFor returns the records behind a section: empty for the scalar sections.
func (m *Model) ItemsFor(section int) ([]contact.Record, error) {
	if err := checkSection(section); err != nil {
		return nil, err
	}
	if m.contact == nil {
		return []contact.Record{}, nil
	}

	switch Section(section) {
	case SectionPhones:
		return records(m.contact.Phones), nil
	case SectionEmails:
		return records(m.contact.Emails), nil
	case SectionAddresses:
		return records(m.contact.Addresses), nil
	default:
		return []contact.Record{}, nil
	}
}

// Item returns the record at (section, row).
func (m *Model) Item(section, row int) (contact.Record, error) {
	items, err := m.ItemsFor(section)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= len(items) {
		return nil, fmt.Errorf("%w: %s row %d of %d", ErrOutOfRange, Section(section), row, len(items))
	}
	return items[row], nil
}

// ClassifyAction maps an edit gesture to its target.
// Every section other than 0-3 falls through to EditAddress, including invalid ones.
func (m *Model) ClassifyAction(section, row int) EditTarget {
	return ClassifyAction(section, row)
}

// ClassifyRowAction maps a delete gesture to its target, or NotDeletable.
func (m *Model) ClassifyRowAction(section, row int) DeleteTarget {
	return ClassifyRowAction(section, row)
}

// ClassifySelect maps a tap to its launch action.
func (m *Model) ClassifySelect(section, row int) SelectTarget {
	return ClassifySelect(section, row)
}

// IsEditableOnly reports whether section offers Edit without Delete.
func (m *Model) IsEditableOnly(section int) bool {
	return IsEditableOnly(section)
}

// ClassifyAction is the contact-independent form of Model.ClassifyAction.
func ClassifyAction(section, row int) EditTarget {
	switch Section(section) {
	case SectionName:
		return EditTarget{Kind: EditName}
	case SectionBirthday:
		return EditTarget{Kind: EditBirthday}
	case SectionPhones:
		return EditTarget{Kind: EditPhone, Row: row}
	case SectionEmails:
		return EditTarget{Kind: EditEmail, Row: row}
	default:
		return EditTarget{Kind: EditAddress, Row: row}
	}
}

// ClassifyRowAction is the contact-independent form of Model.ClassifyRowAction.
func ClassifyRowAction(section, row int) DeleteTarget {
	switch Section(section) {
	case SectionPhones:
		return DeleteTarget{Kind: DeletePhone, Row: row}
	case SectionEmails:
		return DeleteTarget{Kind: DeleteEmail, Row: row}
	case SectionAddresses:
		return DeleteTarget{Kind: DeleteAddress, Row: row}
	default:
		return NotDeletable
	}
}

// ClassifySelect is the contact-independent form of Model.ClassifySelect.
func ClassifySelect(section, row int) SelectTarget {
	switch Section(section) {
	case SectionPhones:
		return SelectTarget{Kind: OpenMessages, Row: row}
	case SectionEmails:
		return SelectTarget{Kind: OpenMail, Row: row}
	case SectionAddresses:
		return SelectTarget{Kind: OpenMaps, Row: row}
	default:
		return NoSelectAction
	}
}

// IsEditableOnly is true for the name and birthday sections.
func IsEditableOnly(section int) bool {
	return Section(section) == SectionName || Section(section) == SectionBirthday
}

func checkSection(section int) error {
	if !Section(section).IsValid() {
		return fmt.Errorf("%w: section %d", ErrOutOfRange, section)
	}
	return nil
}

func records[R contact.Record](list []R) []contact.Record {
	out := make([]contact.Record, len(list))
	for i, r := range list {
		out[i] = r
	}
	return out
}
