package fieldmodel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
	"github.com/tartampluch/go-contactinfo/internal/fieldmodel"
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

func contactWith(phones, emails, addresses int) *contact.Contact {
	c := contact.New("Katherine Johnson")
	c.Color = "2980B9"
	for i := 0; i < phones; i++ {
		c.Phones = append(c.Phones, contact.NewPhone("+1 555 010"+string(rune('0'+i))))
	}
	for i := 0; i < emails; i++ {
		c.Emails = append(c.Emails, contact.NewEmail("k"+string(rune('a'+i))+"@example.com"))
	}
	for i := 0; i < addresses; i++ {
		c.Addresses = append(c.Addresses, contact.NewAddress(contact.Address{Locality: "Hampton"}))
	}
	return &c
}

// -----------------------------------------------------------------------------
// Structure
// -----------------------------------------------------------------------------

func TestSectionCount_AlwaysFive(t *testing.T) {
	assert.Equal(t, 5, fieldmodel.New(nil).SectionCount())
	assert.Equal(t, 5, fieldmodel.New(contactWith(0, 0, 0)).SectionCount())
	assert.Equal(t, 5, fieldmodel.New(contactWith(3, 2, 1)).SectionCount())
}

func TestRowCount_Loaded(t *testing.T) {
	m := fieldmodel.New(contactWith(3, 2, 1))

	want := []int{1, 1, 3, 2, 1}
	for section, rows := range want {
		got, err := m.RowCount(section)
		require.NoError(t, err)
		assert.Equal(t, rows, got, "section %d", section)
	}
}

func TestRowCount_EmptyLists(t *testing.T) {
	m := fieldmodel.New(contactWith(0, 0, 0))

	for section := 0; section < 5; section++ {
		got, err := m.RowCount(section)
		require.NoError(t, err)
		if section < 2 {
			assert.Equal(t, 1, got, "Scalar sections always have one row when loaded")
		} else {
			assert.Equal(t, 0, got)
		}
	}
}

func TestRowCount_OutOfRange(t *testing.T) {
	m := fieldmodel.New(contactWith(1, 1, 1))

	for _, section := range []int{-1, 5, 99} {
		_, err := m.RowCount(section)
		assert.ErrorIs(t, err, fieldmodel.ErrOutOfRange, "section %d", section)

		_, err = m.ItemsFor(section)
		assert.ErrorIs(t, err, fieldmodel.ErrOutOfRange, "section %d", section)
	}
}

// TestRowCount_TracksDeletion checks rowCount(2) == k-1 after a phone is deleted
// and the model is rebuilt.
func TestRowCount_TracksDeletion(t *testing.T) {
	c := contactWith(4, 0, 0)
	store := contact.NewMemoryStore(nil, *c)

	before, err := fieldmodel.New(c).RowCount(int(fieldmodel.SectionPhones))
	require.NoError(t, err)
	assert.Equal(t, 4, before)

	require.NoError(t, store.DeletePhone(c.ID, c.Phones[1].ID))
	fresh, err := store.Contact(c.ID)
	require.NoError(t, err)

	after, err := fieldmodel.New(&fresh).RowCount(int(fieldmodel.SectionPhones))
	require.NoError(t, err)
	assert.Equal(t, 3, after)
}

// TestModel_IsSnapshot ensures later mutation of the source contact does not alter
// an existing model.
func TestModel_IsSnapshot(t *testing.T) {
	c := contactWith(2, 0, 0)
	m := fieldmodel.New(c)

	c.Phones = c.Phones[:1]
	c.Name = "Changed"

	rows, _ := m.RowCount(2)
	assert.Equal(t, 2, rows)
	assert.Equal(t, "Katherine Johnson", m.DisplayName())
}

// -----------------------------------------------------------------------------
// Not loaded
// -----------------------------------------------------------------------------

func TestNoContact_DegradesGracefully(t *testing.T) {
	m := fieldmodel.New(nil)

	assert.False(t, m.Loaded())
	assert.Empty(t, m.ContactID())
	for section := 0; section < 5; section++ {
		rows, err := m.RowCount(section)
		require.NoError(t, err)
		assert.Zero(t, rows, "section %d", section)

		items, err := m.ItemsFor(section)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	assert.Equal(t, "John Doe", m.DisplayName())
	assert.Equal(t, config.DefaultNavColor, m.AccentColor())
	assert.Equal(t, config.DefaultEditColor, m.EditColor())

	_, _, ok := m.Birthday()
	assert.False(t, ok)
}

// -----------------------------------------------------------------------------
// Display values
// -----------------------------------------------------------------------------

func TestDisplayName_AndColors(t *testing.T) {
	c := contactWith(0, 0, 0)
	m := fieldmodel.New(c)
	assert.Equal(t, "Katherine Johnson", m.DisplayName())
	assert.Equal(t, "2980B9", m.AccentColor())
	assert.Equal(t, "2980B9", m.EditColor())

	c.Name, c.Color = "", ""
	m = fieldmodel.New(c)
	assert.Equal(t, config.FallbackName, m.DisplayName())
	assert.Equal(t, "C70039", m.AccentColor(), "Header fallback")
	assert.Equal(t, "008B8B", m.EditColor(), "Edit action fallback differs from the header one")
}

func TestBirthday(t *testing.T) {
	c := contactWith(0, 0, 0)
	d := time.Date(1918, 8, 26, 0, 0, 0, 0, time.UTC)
	c.Birthday, c.BirthYearKnown = &d, true

	got, yearKnown, ok := fieldmodel.New(c).Birthday()
	require.True(t, ok)
	assert.True(t, yearKnown)
	assert.True(t, got.Equal(d))
}

// -----------------------------------------------------------------------------
// Items
// -----------------------------------------------------------------------------

func TestItemsFor_MatchesRowCount(t *testing.T) {
	for _, c := range []*contact.Contact{nil, contactWith(0, 0, 0), contactWith(2, 3, 1), contactWith(5, 0, 4)} {
		m := fieldmodel.New(c)
		for section := 0; section < 5; section++ {
			items, err := m.ItemsFor(section)
			require.NoError(t, err)
			if section < 2 {
				assert.Empty(t, items, "Scalar sections are not list-backed")
				continue
			}
			rows, err := m.RowCount(section)
			require.NoError(t, err)
			assert.Len(t, items, rows)
		}
	}
}

func TestItemsFor_PreservesOrder(t *testing.T) {
	c := contactWith(3, 0, 0)
	items, err := fieldmodel.New(c).ItemsFor(2)
	require.NoError(t, err)

	for i, item := range items {
		assert.Equal(t, c.Phones[i].ID, item.RecordID())
		assert.Equal(t, c.Phones[i].Number, item.Display())
	}
}

func TestItem_Bounds(t *testing.T) {
	c := contactWith(1, 2, 0)
	m := fieldmodel.New(c)

	item, err := m.Item(3, 1)
	require.NoError(t, err)
	assert.Equal(t, c.Emails[1].ID, item.RecordID())

	_, err = m.Item(3, 2)
	assert.ErrorIs(t, err, fieldmodel.ErrOutOfRange)
	_, err = m.Item(0, 0)
	assert.ErrorIs(t, err, fieldmodel.ErrOutOfRange, "Scalar sections have no records")
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

func TestClassifyAction(t *testing.T) {
	m := fieldmodel.New(nil)

	tests := []struct {
		section, row int
		want         fieldmodel.EditTarget
	}{
		{0, 0, fieldmodel.EditTarget{Kind: fieldmodel.EditName}},
		{1, 0, fieldmodel.EditTarget{Kind: fieldmodel.EditBirthday}},
		{2, 3, fieldmodel.EditTarget{Kind: fieldmodel.EditPhone, Row: 3}},
		{3, 2, fieldmodel.EditTarget{Kind: fieldmodel.EditEmail, Row: 2}},
		{4, 1, fieldmodel.EditTarget{Kind: fieldmodel.EditAddress, Row: 1}},
		// Catch-all branch: anything else edits an address.
		{99, 0, fieldmodel.EditTarget{Kind: fieldmodel.EditAddress, Row: 0}},
		{5, 7, fieldmodel.EditTarget{Kind: fieldmodel.EditAddress, Row: 7}},
		{-1, 0, fieldmodel.EditTarget{Kind: fieldmodel.EditAddress, Row: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, m.ClassifyAction(tt.section, tt.row))
		})
	}
}

func TestClassifyRowAction(t *testing.T) {
	m := fieldmodel.New(contactWith(1, 1, 1))

	assert.Equal(t, fieldmodel.NotDeletable, m.ClassifyRowAction(0, 0))
	assert.Equal(t, fieldmodel.NotDeletable, m.ClassifyRowAction(1, 0))
	assert.Equal(t, fieldmodel.DeleteTarget{Kind: fieldmodel.DeletePhone, Row: 4}, m.ClassifyRowAction(2, 4))
	assert.Equal(t, fieldmodel.DeleteTarget{Kind: fieldmodel.DeleteEmail, Row: 2}, m.ClassifyRowAction(3, 2))
	assert.Equal(t, fieldmodel.DeleteTarget{Kind: fieldmodel.DeleteAddress, Row: 0}, m.ClassifyRowAction(4, 0))
	assert.False(t, m.ClassifyRowAction(99, 0).Deletable())
}

func TestIsEditableOnly(t *testing.T) {
	assert.True(t, fieldmodel.IsEditableOnly(0))
	assert.True(t, fieldmodel.IsEditableOnly(1))
	for _, s := range []int{2, 3, 4} {
		assert.False(t, fieldmodel.IsEditableOnly(s))
		assert.True(t, fieldmodel.ClassifyRowAction(s, 0).Deletable(), "Sections offering delete must classify to a record")
	}
}

func TestClassifySelect(t *testing.T) {
	assert.Equal(t, fieldmodel.NoSelectAction, fieldmodel.ClassifySelect(0, 0))
	assert.Equal(t, fieldmodel.NoSelectAction, fieldmodel.ClassifySelect(1, 0))
	assert.Equal(t, fieldmodel.SelectTarget{Kind: fieldmodel.OpenMessages, Row: 1}, fieldmodel.ClassifySelect(2, 1))
	assert.Equal(t, fieldmodel.SelectTarget{Kind: fieldmodel.OpenMail, Row: 0}, fieldmodel.ClassifySelect(3, 0))
	assert.Equal(t, fieldmodel.SelectTarget{Kind: fieldmodel.OpenMaps, Row: 2}, fieldmodel.ClassifySelect(4, 2))
	assert.Equal(t, fieldmodel.NoSelectAction, fieldmodel.ClassifySelect(42, 0))
}

// TestQueries_Idempotent calls every query twice and expects identical answers.
func TestQueries_Idempotent(t *testing.T) {
	m := fieldmodel.New(contactWith(2, 1, 3))

	for section := -1; section <= 5; section++ {
		r1, e1 := m.RowCount(section)
		r2, e2 := m.RowCount(section)
		assert.Equal(t, r1, r2)
		assert.Equal(t, e1, e2)

		i1, _ := m.ItemsFor(section)
		i2, _ := m.ItemsFor(section)
		assert.Equal(t, i1, i2)

		assert.Equal(t, m.ClassifyAction(section, 1), m.ClassifyAction(section, 1))
		assert.Equal(t, m.ClassifyRowAction(section, 1), m.ClassifyRowAction(section, 1))
		assert.Equal(t, m.IsEditableOnly(section), m.IsEditableOnly(section))
	}
	assert.Equal(t, m.DisplayName(), m.DisplayName())
	assert.Equal(t, m.AccentColor(), m.AccentColor())
}

func TestSection_Strings(t *testing.T) {
	assert.Len(t, fieldmodel.Sections, config.SectionCount)
	assert.Equal(t, "phones", fieldmodel.SectionPhones.String())
	assert.Equal(t, "section(9)", fieldmodel.Section(9).String())
	assert.True(t, fieldmodel.SectionAddresses.IsListBacked())
	assert.False(t, fieldmodel.SectionBirthday.IsListBacked())
	assert.Equal(t, "edit_phone(3)", fieldmodel.EditTarget{Kind: fieldmodel.EditPhone, Row: 3}.String())
	assert.Equal(t, "edit_name", fieldmodel.EditTarget{Kind: fieldmodel.EditName}.String())
	assert.Equal(t, "not_deletable", fieldmodel.NotDeletable.String())
}
