package contact

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tartampluch/go-contactinfo/internal/config"
)

// ErrNotFound is returned when a contact or one of its records does not exist.
var ErrNotFound = errors.New(config.ErrNotFound)

// Store is the persistence collaborator of the contact-info screen.
// Every mutation is keyed by contact ID; reads return deep copies.
type Store interface {
	Contacts() []Contact
	Contact(id string) (Contact, error)
	SaveContact(c Contact) error
	SaveContacts(cs []Contact) error
	DeleteContact(id string) error

	SetName(contactID, name string) error
	SetBirthday(contactID string, birthday *time.Time, yearKnown bool) error
	SetColor(contactID, color string) error

	UpsertPhone(contactID string, p Phone) error
	DeletePhone(contactID, phoneID string) error
	UpsertEmail(contactID string, e Email) error
	DeleteEmail(contactID, emailID string) error
	UpsertAddress(contactID string, a Address) error
	DeleteAddress(contactID, addressID string) error
}

// CommitFunc receives the full contact list after each mutation.
// It runs under the store's write lock; a returned error rolls the mutation back.
type CommitFunc func(contacts []Contact) error

// MemoryStore keeps contacts in memory, in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	contacts map[string]*Contact
	order    []string
	commit   CommitFunc
}

// NewMemoryStore returns a store seeded with contacts. commit may be nil.
func NewMemoryStore(commit CommitFunc, contacts ...Contact) *MemoryStore {
	s := &MemoryStore{
		contacts: make(map[string]*Contact, len(contacts)),
		commit:   commit,
	}
	for _, c := range contacts {
		s.put(c.Clone())
	}
	return s
}

// put inserts or replaces c; new IDs go to the end so list order stays stable.
func (s *MemoryStore) put(c Contact) {
	if _, ok := s.contacts[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.contacts[c.ID] = &c
}

// Contacts returns a snapshot of all contacts.
func (s *MemoryStore) Contacts() []Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *MemoryStore) snapshotLocked() []Contact {
	out := make([]Contact, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contacts[id].Clone())
	}
	return out
}

// Contact returns a snapshot of a single contact.
func (s *MemoryStore) Contact(id string) (Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, fmt.Errorf("%w: contact %q", ErrNotFound, id)
	}
	return c.Clone(), nil
}

// SaveContact creates c or replaces the stored contact with the same ID.
func (s *MemoryStore) SaveContact(c Contact) error {
	if c.ID == "" {
		return fmt.Errorf("%w: empty contact id", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Remember what to restore if the commit hook refuses the change.
	prevOrder := append([]string(nil), s.order...)
	prev, existed := s.contacts[c.ID]
	s.put(c.Clone())

	if err := s.commitLocked(); err != nil {
		s.order = prevOrder
		if existed {
			s.contacts[c.ID] = prev
		} else {
			delete(s.contacts, c.ID)
		}
		return err
	}
	return nil
}

// SaveContacts creates or replaces every contact of cs with a single commit.
// Either all of them are stored or, on any error, none is.
func (s *MemoryStore) SaveContacts(cs []Contact) error {
	for _, c := range cs {
		if c.ID == "" {
			return fmt.Errorf("%w: empty contact id", ErrNotFound)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep the previous entries so the whole batch can be undone.
	prevOrder := append([]string(nil), s.order...)
	prev := make(map[string]*Contact, len(cs))
	for _, c := range cs {
		if _, seen := prev[c.ID]; !seen {
			prev[c.ID] = s.contacts[c.ID] // nil for new contacts
		}
		s.put(c.Clone())
	}

	if err := s.commitLocked(); err != nil {
		s.order = prevOrder
		for id, old := range prev {
			if old == nil {
				delete(s.contacts, id)
			} else {
				s.contacts[id] = old
			}
		}
		return err
	}
	return nil
}

// DeleteContact removes a contact and all its records.
func (s *MemoryStore) DeleteContact(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.contacts[id]
	if !ok {
		return fmt.Errorf("%w: contact %q", ErrNotFound, id)
	}
	prevOrder := s.order

	delete(s.contacts, id)
	order := make([]string, 0, len(s.order))
	for _, o := range s.order {
		if o != id {
			order = append(order, o)
		}
	}
	s.order = order

	if err := s.commitLocked(); err != nil {
		s.contacts[id] = prev
		s.order = prevOrder
		return err
	}
	return nil
}

// update applies fn to a working copy and swaps it in once fn and the commit succeed.
func (s *MemoryStore) update(contactID string, fn func(c *Contact) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.contacts[contactID]
	if !ok {
		return fmt.Errorf("%w: contact %q", ErrNotFound, contactID)
	}

	// fn works on a copy: a failing fn or commit never leaves a half-applied edit.
	next := cur.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	s.contacts[contactID] = &next
	if err := s.commitLocked(); err != nil {
		s.contacts[contactID] = cur
		return err
	}
	return nil
}

func (s *MemoryStore) commitLocked() error {
	if s.commit == nil {
		return nil
	}
	if err := s.commit(s.snapshotLocked()); err != nil {
		slog.Error(config.ErrStoreCommit,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err)
		return fmt.Errorf("%s: %w", config.ErrStoreCommit, err)
	}
	return nil
}

func (s *MemoryStore) SetName(contactID, name string) error {
	return s.update(contactID, func(c *Contact) error {
		c.Name = name
		return nil
	})
}

func (s *MemoryStore) SetBirthday(contactID string, birthday *time.Time, yearKnown bool) error {
	return s.update(contactID, func(c *Contact) error {
		if birthday == nil {
			c.Birthday, c.BirthYearKnown = nil, false
			return nil
		}
		b := *birthday
		c.Birthday, c.BirthYearKnown = &b, yearKnown
		return nil
	})
}

func (s *MemoryStore) SetColor(contactID, color string) error {
	return s.update(contactID, func(c *Contact) error {
		c.Color = color
		return nil
	})
}

func (s *MemoryStore) UpsertPhone(contactID string, p Phone) error {
	return s.update(contactID, func(c *Contact) error {
		c.Phones = upsert(c.Phones, p)
		return nil
	})
}

func (s *MemoryStore) DeletePhone(contactID, phoneID string) error {
	return s.update(contactID, func(c *Contact) error {
		var err error
		c.Phones, err = remove(c.Phones, phoneID)
		return err
	})
}

func (s *MemoryStore) UpsertEmail(contactID string, e Email) error {
	return s.update(contactID, func(c *Contact) error {
		c.Emails = upsert(c.Emails, e)
		return nil
	})
}

func (s *MemoryStore) DeleteEmail(contactID, emailID string) error {
	return s.update(contactID, func(c *Contact) error {
		var err error
		c.Emails, err = remove(c.Emails, emailID)
		return err
	})
}

func (s *MemoryStore) UpsertAddress(contactID string, a Address) error {
	return s.update(contactID, func(c *Contact) error {
		c.Addresses = upsert(c.Addresses, a)
		return nil
	})
}

func (s *MemoryStore) DeleteAddress(contactID, addressID string) error {
	return s.update(contactID, func(c *Contact) error {
		var err error
		c.Addresses, err = remove(c.Addresses, addressID)
		return err
	})
}

// upsert replaces the record with the same ID in place, or appends it.
func upsert[R Record](list []R, r R) []R {
	for i := range list {
		if list[i].RecordID() == r.RecordID() {
			list[i] = r
			return list
		}
	}
	return append(list, r)
}

// remove deletes the record with id; the caller owns list (it is a clone).
func remove[R Record](list []R, id string) ([]R, error) {
	for i := range list {
		if list[i].RecordID() == id {
			return append(list[:i], list[i+1:]...), nil
		}
	}
	return list, fmt.Errorf("%w: record %q", ErrNotFound, id)
}

// Compile-time assertion that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
