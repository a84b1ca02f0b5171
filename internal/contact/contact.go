package contact

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-contactinfo/internal/config"
)

// Record is a list-backed contact field (phone, email or address).
// RecordID locates the record for edit/delete; Display is its one-line rendering.
type Record interface {
	RecordID() string
	Display() string
}

// Contact is the aggregate root owned by the Store.
// Empty Name and Color mean "absent"; callers apply their own fallbacks.
type Contact struct {
	ID    string
	Name  string
	Color string

	// Birthday is nil when unknown. BirthYearKnown is false for --MM-DD dates,
	// in which case the year is config.DefaultLeapYear.
	Birthday       *time.Time
	BirthYearKnown bool

	Phones    []Phone
	Emails    []Email
	Addresses []Address
}

// Phone is a telephone number of a contact.
type Phone struct {
	ID     string
	Number string
	Label  string // vCard TYPE, e.g. "cell"
}

// Email is an email address of a contact.
type Email struct {
	ID      string
	Address string
	Label   string
}

// Address is a postal address of a contact.
type Address struct {
	ID         string
	Label      string
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// New creates an empty contact with a fresh identifier.
func New(name string) Contact {
	return Contact{ID: uuid.NewString(), Name: name}
}

// NewPhone returns a phone record with a fresh identifier.
func NewPhone(number string) Phone {
	return Phone{ID: uuid.NewString(), Number: number}
}

// NewEmail returns an email record with a fresh identifier.
func NewEmail(address string) Email {
	return Email{ID: uuid.NewString(), Address: address}
}

// NewAddress assigns a fresh identifier to a.
func NewAddress(a Address) Address {
	a.ID = uuid.NewString()
	return a
}

func (p Phone) RecordID() string { return p.ID }
func (p Phone) Display() string  { return p.Number }

// URI returns the sms: link used to start a conversation.
func (p Phone) URI() *url.URL {
	return &url.URL{Scheme: config.SchemeSMS, Opaque: strings.ReplaceAll(p.Number, " ", "")}
}

func (e Email) RecordID() string { return e.ID }
func (e Email) Display() string  { return e.Address }

// URI returns the mailto: link for the address.
func (e Email) URI() *url.URL {
	return &url.URL{Scheme: config.SchemeMailto, Opaque: e.Address}
}

func (a Address) RecordID() string { return a.ID }

// Display joins the non-empty address components with ", ".
func (a Address) Display() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.Locality, a.Region, a.PostalCode, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEmpty reports whether no component of the address is set.
func (a Address) IsEmpty() bool {
	return a.Display() == ""
}

// MapURI returns a map search link for the address.
func (a Address) MapURI() *url.URL {
	u, _ := url.Parse(config.MapsURL)
	q := u.Query()
	q.Set(config.MapsQueryKey, a.Display())
	u.RawQuery = q.Encode()
	return u
}

// Clone returns a deep copy so snapshots never alias store state.
func (c Contact) Clone() Contact {
	out := c
	if c.Birthday != nil {
		b := *c.Birthday
		out.Birthday = &b
	}
	out.Phones = append([]Phone(nil), c.Phones...)
	out.Emails = append([]Email(nil), c.Emails...)
	out.Addresses = append([]Address(nil), c.Addresses...)
	return out
}
