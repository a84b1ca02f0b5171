// Package contactinfo turns the gestures classified by the field model into store
// mutations for one contact and notifies the parent view after each success.
package contactinfo

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/fieldmodel"
)

var (
	// ErrEmptyValue is returned when an edit would store a blank value.
	ErrEmptyValue = errors.New(config.ErrEmptyValue)

	// ErrNotDeletable is returned by Delete for fieldmodel.NotDeletable.
	ErrNotDeletable = errors.New(config.ErrNotDeletable)

	// ErrNoContact is returned when the controller has no contact to act on.
	ErrNoContact = errors.New(config.ErrNoContact)
)

const (
	actionAddPhone    = "add_phone"
	actionAddEmail    = "add_email"
	actionAddAddress  = "add_address"
	actionChangeColor = "change_color"
)

// Input carries the value of an edit. Text is used by every kind except EditAddress,
// which reads Address. Label is optional.
type Input struct {
	Text    string
	Label   string
	Address contact.Address
}

// Controller drives the contact-info screen of a single contact.
// It is safe for use from the UI goroutine and background callbacks.
type Controller struct {
	store     contact.Store
	contactID string

	// OnUpdate is the didUpdateContactInfo hook, called after every successful mutation.
	OnUpdate func()

	rng *rand.Rand

	mu    sync.Mutex
	model *fieldmodel.Model
}

// Option configures a Controller.
type Option func(*Controller)

// WithOnUpdate sets the callback fired after each successful edit or delete.
func WithOnUpdate(fn func()) Option {
	return func(c *Controller) { c.OnUpdate = fn }
}

// WithRand makes the color action deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// New returns a controller for contactID. An empty ID yields a "not loaded" screen.
func New(store contact.Store, contactID string, opts ...Option) *Controller {
	c := &Controller{store: store, contactID: contactID}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ContactID returns the identifier of the contact shown.
func (c *Controller) ContactID() string {
	return c.contactID
}

// Model returns the cached field model, rebuilding it after an invalidation.
// A contact missing from the store is reported as "not loaded".
func (c *Controller) Model() *fieldmodel.Model {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model == nil {
		c.model = c.loadLocked()
	}
	return c.model
}

func (c *Controller) loadLocked() *fieldmodel.Model {
	if c.contactID == "" {
		return fieldmodel.New(nil)
	}
	snap, err := c.store.Contact(c.contactID)
	if err != nil {
		slog.Debug(config.ErrNoContact,
			config.LogKeyComponent, config.CompInfo,
			config.LogKeyContact, c.contactID,
			config.LogKeyError, err)
		return fieldmodel.New(nil)
	}
	return fieldmodel.New(&snap)
}

// Invalidate drops the cached model. The next Model call re-reads the store.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	c.model = nil
	c.mu.Unlock()
}

// Apply performs an edit against the store.
// Row-based targets name the record shown on screen; an edit of a record removed
// since then fails with contact.ErrNotFound instead of landing on its neighbour.
func (c *Controller) Apply(target fieldmodel.EditTarget, in Input) error {
	return c.mutate(target.String(), config.MsgContactEdited, func(m *fieldmodel.Model) error {
		id := m.ContactID()
		text := strings.TrimSpace(in.Text)

		switch target.Kind {
		case fieldmodel.EditName:
			if text == "" {
				return ErrEmptyValue
			}
			return c.store.SetName(id, text)

		case fieldmodel.EditBirthday:
			if text == "" {
				return c.store.SetBirthday(id, nil, false)
			}
			bday, yearKnown, err := contact.ParseDate(text)
			if err != nil {
				return err
			}
			return c.store.SetBirthday(id, &bday, yearKnown)

		case fieldmodel.EditPhone:
			if text == "" {
				return ErrEmptyValue
			}
			rec, err := c.resolve(m, fieldmodel.SectionPhones, target.Row)
			if err != nil {
				return err
			}
			p := rec.(contact.Phone)
			p.Number, p.Label = text, labelOr(in.Label, p.Label)
			return c.store.UpsertPhone(id, p)

		case fieldmodel.EditEmail:
			if text == "" {
				return ErrEmptyValue
			}
			rec, err := c.resolve(m, fieldmodel.SectionEmails, target.Row)
			if err != nil {
				return err
			}
			e := rec.(contact.Email)
			e.Address, e.Label = text, labelOr(in.Label, e.Label)
			return c.store.UpsertEmail(id, e)

		default:
			if in.Address.IsEmpty() {
				return ErrEmptyValue
			}
			rec, err := c.resolve(m, fieldmodel.SectionAddresses, target.Row)
			if err != nil {
				return err
			}
			prev := rec.(contact.Address)
			a := in.Address
			a.ID, a.Label = prev.ID, labelOr(in.Label, labelOr(a.Label, prev.Label))
			return c.store.UpsertAddress(id, a)
		}
	})
}

// Delete removes the record named by target. The row is mapped to a record ID on the
// model on screen, so a concurrent change cannot redirect the delete to another record.
func (c *Controller) Delete(target fieldmodel.DeleteTarget) error {
	if !target.Deletable() {
		return ErrNotDeletable
	}

	return c.mutate(target.String(), config.MsgContactDelete, func(m *fieldmodel.Model) error {
		id := m.ContactID()
		switch target.Kind {
		case fieldmodel.DeletePhone:
			rec, err := m.Item(int(fieldmodel.SectionPhones), target.Row)
			if err != nil {
				return err
			}
			return c.store.DeletePhone(id, rec.RecordID())
		case fieldmodel.DeleteEmail:
			rec, err := m.Item(int(fieldmodel.SectionEmails), target.Row)
			if err != nil {
				return err
			}
			return c.store.DeleteEmail(id, rec.RecordID())
		default:
			rec, err := m.Item(int(fieldmodel.SectionAddresses), target.Row)
			if err != nil {
				return err
			}
			return c.store.DeleteAddress(id, rec.RecordID())
		}
	})
}

// AddPhone appends a phone number.
func (c *Controller) AddPhone(in Input) error {
	text := strings.TrimSpace(in.Text)
	return c.mutate(actionAddPhone, config.MsgContactAdded, func(m *fieldmodel.Model) error {
		if text == "" {
			return ErrEmptyValue
		}
		p := contact.NewPhone(text)
		p.Label = in.Label
		return c.store.UpsertPhone(m.ContactID(), p)
	})
}

// AddEmail appends an email address.
func (c *Controller) AddEmail(in Input) error {
	text := strings.TrimSpace(in.Text)
	return c.mutate(actionAddEmail, config.MsgContactAdded, func(m *fieldmodel.Model) error {
		if text == "" {
			return ErrEmptyValue
		}
		e := contact.NewEmail(text)
		e.Label = in.Label
		return c.store.UpsertEmail(m.ContactID(), e)
	})
}

// AddAddress appends a postal address.
func (c *Controller) AddAddress(in Input) error {
	return c.mutate(actionAddAddress, config.MsgContactAdded, func(m *fieldmodel.Model) error {
		if in.Address.IsEmpty() {
			return ErrEmptyValue
		}
		a := contact.NewAddress(in.Address)
		a.Label = labelOr(in.Label, a.Label)
		return c.store.UpsertAddress(m.ContactID(), a)
	})
}

// ChangeColor assigns a new palette color, different from the current one.
func (c *Controller) ChangeColor() (string, error) {
	var picked string
	err := c.mutate(actionChangeColor, config.MsgColorChanged, func(m *fieldmodel.Model) error {
		current := ""
		if snap, err := c.store.Contact(m.ContactID()); err == nil {
			current = snap.Color
		}
		picked = contact.RandomColor(c.rng, current)
		return c.store.SetColor(m.ContactID(), picked)
	})
	if err != nil {
		return "", err
	}
	return picked, nil
}

// mutate runs fn on the model currently on screen, then invalidates the cache and
// notifies on success. Row indexes only have meaning against that model.
func (c *Controller) mutate(action, msg string, fn func(m *fieldmodel.Model) error) error {
	log := slog.With(
		config.LogKeyComponent, config.CompInfo,
		config.LogKeyContact, c.contactID,
		config.LogKeyTarget, action,
	)

	m := c.Model()
	if !m.Loaded() {
		return ErrNoContact
	}

	if err := fn(m); err != nil {
		log.Warn(config.ErrContactAction, config.LogKeyError, err)
		return fmt.Errorf("%s: %w", action, err)
	}

	c.Invalidate()
	log.Info(msg)

	if c.OnUpdate != nil {
		c.OnUpdate()
	}
	return nil
}

// resolve maps a row of the displayed model to the record stored today under the
// same ID. Field values come from the store so an edit never resurrects stale data.
func (c *Controller) resolve(m *fieldmodel.Model, section fieldmodel.Section, row int) (contact.Record, error) {
	shown, err := m.Item(int(section), row)
	if err != nil {
		return nil, err
	}
	cur, err := c.store.Contact(m.ContactID())
	if err != nil {
		return nil, err
	}

	var rec contact.Record
	switch section {
	case fieldmodel.SectionPhones:
		rec = findRecord(cur.Phones, shown.RecordID())
	case fieldmodel.SectionEmails:
		rec = findRecord(cur.Emails, shown.RecordID())
	default:
		rec = findRecord(cur.Addresses, shown.RecordID())
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: record %q", contact.ErrNotFound, shown.RecordID())
	}
	return rec, nil
}

func findRecord[R contact.Record](list []R, id string) contact.Record {
	for _, r := range list {
		if r.RecordID() == id {
			return r
		}
	}
	return nil
}

func labelOr(label, fallback string) string {
	if label = strings.TrimSpace(label); label != "" {
		return label
	}
	return fallback
}
