package contact_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactinfo/internal/contact"
)

func seedContact() contact.Contact {
	c := contact.New("Ada Lovelace")
	c.Phones = []contact.Phone{contact.NewPhone("+44 20 1111"), contact.NewPhone("+44 20 2222")}
	c.Emails = []contact.Email{contact.NewEmail("ada@example.com")}
	c.Addresses = []contact.Address{contact.NewAddress(contact.Address{Street: "12 St James's Square", Locality: "London"})}
	return c
}

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	c := seedContact()
	store := contact.NewMemoryStore(nil, c)

	snap, err := store.Contact(c.ID)
	require.NoError(t, err)

	// Mutating the snapshot must not leak into the store.
	snap.Phones[0].Number = "tampered"
	snap.Name = "tampered"

	again, err := store.Contact(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", again.Name)
	assert.Equal(t, "+44 20 1111", again.Phones[0].Number)
}

func TestMemoryStore_UpsertKeepsOrder(t *testing.T) {
	c := seedContact()
	store := contact.NewMemoryStore(nil, c)

	edited := c.Phones[0]
	edited.Number = "+44 20 9999"
	require.NoError(t, store.UpsertPhone(c.ID, edited))
	require.NoError(t, store.UpsertPhone(c.ID, contact.NewPhone("+33 1 0000")))

	got, err := store.Contact(c.ID)
	require.NoError(t, err)
	require.Len(t, got.Phones, 3)
	assert.Equal(t, "+44 20 9999", got.Phones[0].Number, "Edit must happen in place")
	assert.Equal(t, "+44 20 2222", got.Phones[1].Number)
	assert.Equal(t, "+33 1 0000", got.Phones[2].Number, "New records are appended")
}

func TestMemoryStore_DeleteRecords(t *testing.T) {
	c := seedContact()
	store := contact.NewMemoryStore(nil, c)

	require.NoError(t, store.DeletePhone(c.ID, c.Phones[0].ID))
	require.NoError(t, store.DeleteEmail(c.ID, c.Emails[0].ID))
	require.NoError(t, store.DeleteAddress(c.ID, c.Addresses[0].ID))

	got, err := store.Contact(c.ID)
	require.NoError(t, err)
	assert.Len(t, got.Phones, 1)
	assert.Equal(t, c.Phones[1].ID, got.Phones[0].ID)
	assert.Empty(t, got.Emails)
	assert.Empty(t, got.Addresses)

	err = store.DeletePhone(c.ID, "missing")
	assert.ErrorIs(t, err, contact.ErrNotFound)
}

func TestMemoryStore_UnknownContact(t *testing.T) {
	store := contact.NewMemoryStore(nil)

	_, err := store.Contact("nope")
	assert.ErrorIs(t, err, contact.ErrNotFound)
	assert.ErrorIs(t, store.SetName("nope", "x"), contact.ErrNotFound)
	assert.ErrorIs(t, store.DeleteContact("nope"), contact.ErrNotFound)
}

func TestMemoryStore_ScalarFields(t *testing.T) {
	c := contact.New("")
	store := contact.NewMemoryStore(nil, c)

	bday := time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetName(c.ID, "Ada"))
	require.NoError(t, store.SetBirthday(c.ID, &bday, true))
	require.NoError(t, store.SetColor(c.ID, "2980B9"))

	got, err := store.Contact(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, "2980B9", got.Color)
	require.NotNil(t, got.Birthday)
	assert.True(t, got.Birthday.Equal(bday))
	assert.True(t, got.BirthYearKnown)

	require.NoError(t, store.SetBirthday(c.ID, nil, true))
	got, _ = store.Contact(c.ID)
	assert.Nil(t, got.Birthday)
	assert.False(t, got.BirthYearKnown)
}

// TestMemoryStore_CommitFailureRollsBack verifies a failing commit hook leaves the
// previous state visible.
func TestMemoryStore_CommitFailureRollsBack(t *testing.T) {
	c := seedContact()
	fail := false
	commits := 0
	store := contact.NewMemoryStore(func(all []contact.Contact) error {
		commits++
		if fail {
			return errors.New("disk full")
		}
		return nil
	}, c)

	require.NoError(t, store.SetName(c.ID, "Countess"))
	assert.Equal(t, 1, commits)

	fail = true
	err := store.SetName(c.ID, "Lost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	err = store.SaveContact(contact.New("Also Lost"))
	require.Error(t, err)

	got, _ := store.Contact(c.ID)
	assert.Equal(t, "Countess", got.Name)
	assert.Len(t, store.Contacts(), 1)
}

func TestMemoryStore_ContactsOrder(t *testing.T) {
	a, b := contact.New("A"), contact.New("B")
	store := contact.NewMemoryStore(nil, a, b)

	require.NoError(t, store.SaveContact(contact.New("C")))
	b.Name = "B2"
	require.NoError(t, store.SaveContact(b))

	all := store.Contacts()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B2", "C"}, []string{all[0].Name, all[1].Name, all[2].Name})

	require.NoError(t, store.DeleteContact(a.ID))
	assert.Len(t, store.Contacts(), 2)
}

func TestMemoryStore_SaveContactsCommitsOnce(t *testing.T) {
	existing := seedContact()
	commits := 0
	store := contact.NewMemoryStore(func(all []contact.Contact) error {
		commits++
		return nil
	}, existing)

	renamed := existing.Clone()
	renamed.Name = "Countess of Lovelace"
	batch := []contact.Contact{contact.New("Grace"), renamed, contact.New("Hedy")}

	require.NoError(t, store.SaveContacts(batch))
	assert.Equal(t, 1, commits, "A batch is written once")

	all := store.Contacts()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Countess of Lovelace", "Grace", "Hedy"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func TestMemoryStore_SaveContactsRollsBackWholeBatch(t *testing.T) {
	existing := seedContact()
	store := contact.NewMemoryStore(func(all []contact.Contact) error {
		return errors.New("disk full")
	}, existing)

	renamed := existing.Clone()
	renamed.Name = "Lost"
	err := store.SaveContacts([]contact.Contact{renamed, contact.New("Also Lost")})
	require.Error(t, err)

	all := store.Contacts()
	require.Len(t, all, 1)
	assert.Equal(t, "Ada Lovelace", all[0].Name)

	err = store.SaveContacts([]contact.Contact{{Name: "No ID"}})
	assert.ErrorIs(t, err, contact.ErrNotFound)
}
