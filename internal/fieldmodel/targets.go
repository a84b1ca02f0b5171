package fieldmodel

import "fmt"

// Section is one of the five fixed groups of the contact-info list.
// The numeric value is the positional section index.
type Section int

const (
	SectionName Section = iota
	SectionBirthday
	SectionPhones
	SectionEmails
	SectionAddresses
)

// Sections lists every section in display order.
var Sections = []Section{SectionName, SectionBirthday, SectionPhones, SectionEmails, SectionAddresses}

// String returns the section name used in logs.
func (s Section) String() string {
	switch s {
	case SectionName:
		return "name"
	case SectionBirthday:
		return "birthday"
	case SectionPhones:
		return "phones"
	case SectionEmails:
		return "emails"
	case SectionAddresses:
		return "addresses"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// IsValid reports whether s is one of the five sections.
func (s Section) IsValid() bool {
	return s >= SectionName && s <= SectionAddresses
}

// IsListBacked reports whether the section has one row per record.
func (s Section) IsListBacked() bool {
	return s == SectionPhones || s == SectionEmails || s == SectionAddresses
}

// EditKind tags an EditTarget.
type EditKind int

const (
	EditName EditKind = iota
	EditBirthday
	EditPhone
	EditEmail
	EditAddress
)

func (k EditKind) String() string {
	switch k {
	case EditName:
		return "edit_name"
	case EditBirthday:
		return "edit_birthday"
	case EditPhone:
		return "edit_phone"
	case EditEmail:
		return "edit_email"
	case EditAddress:
		return "edit_address"
	default:
		return fmt.Sprintf("edit(%d)", int(k))
	}
}

// EditTarget identifies the field a user edit gesture refers to.
// Row is only meaningful for EditPhone, EditEmail and EditAddress.
type EditTarget struct {
	Kind EditKind
	Row  int
}

func (t EditTarget) String() string {
	if t.Kind == EditName || t.Kind == EditBirthday {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.Row)
}

// DeleteKind tags a DeleteTarget. DeleteNone marks a row that offers no delete action.
type DeleteKind int

const (
	DeleteNone DeleteKind = iota
	DeletePhone
	DeleteEmail
	DeleteAddress
)

func (k DeleteKind) String() string {
	switch k {
	case DeleteNone:
		return "not_deletable"
	case DeletePhone:
		return "delete_phone"
	case DeleteEmail:
		return "delete_email"
	case DeleteAddress:
		return "delete_address"
	default:
		return fmt.Sprintf("delete(%d)", int(k))
	}
}

// DeleteTarget identifies the record a swipe-delete gesture refers to.
type DeleteTarget struct {
	Kind DeleteKind
	Row  int
}

// NotDeletable is returned for the name and birthday rows.
var NotDeletable = DeleteTarget{Kind: DeleteNone}

// Deletable reports whether the target names a record.
func (t DeleteTarget) Deletable() bool {
	return t.Kind != DeleteNone
}

func (t DeleteTarget) String() string {
	if !t.Deletable() {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", t.Kind, t.Row)
}

// SelectKind tags a SelectTarget.
type SelectKind int

const (
	SelectNone SelectKind = iota
	OpenMessages
	OpenMail
	OpenMaps
)

func (k SelectKind) String() string {
	switch k {
	case SelectNone:
		return "none"
	case OpenMessages:
		return "open_messages"
	case OpenMail:
		return "open_mail"
	case OpenMaps:
		return "open_maps"
	default:
		return fmt.Sprintf("select(%d)", int(k))
	}
}

// SelectTarget is the launch action triggered by tapping a row.
type SelectTarget struct {
	Kind SelectKind
	Row  int
}

// NoSelectAction is returned for rows that do nothing when tapped.
var NoSelectAction = SelectTarget{Kind: SelectNone}
