package contact

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/tartampluch/go-contactinfo/internal/config"
)

// DecodeVCards parses a vCard stream into contacts.
// Malformed cards and unparsable birthdays are logged and skipped; an error is returned
// only when nothing could be decoded.
func DecodeVCards(r io.Reader) ([]Contact, error) {
	decoder := vcard.NewDecoder(r)
	var contacts []Contact
	var lastErr error

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// One broken card must not cost the whole address book.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompCodec,
				config.LogKeyError, err)
			lastErr = err
			continue
		}
		contacts = append(contacts, cardToContact(card))
	}

	if len(contacts) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, lastErr)
	}
	return contacts, nil
}

func cardToContact(card vcard.Card) Contact {
	c := Contact{
		ID:   strings.TrimSpace(card.Value(vcard.FieldUID)),
		Name: cardName(card),
	}
	if c.ID == "" {
		c.ID = derivedCardID(card, c.Name)
	}
	// X-COLOR is our own extension; other clients simply ignore it.
	if color, err := NormalizeColor(card.Value(config.VCardColor)); err == nil {
		c.Color = color
	}

	if bday := card.Get(vcard.FieldBirthday); bday != nil && bday.Value != "" {
		if t, yearKnown, err := ParseDate(bday.Value); err == nil {
			c.Birthday, c.BirthYearKnown = &t, yearKnown
		} else {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompCodec,
				config.LogKeyValue, bday.Value)
		}
	}

	for i, f := range card[vcard.FieldTelephone] {
		if v := strings.TrimSpace(f.Value); v != "" {
			c.Phones = append(c.Phones, Phone{ID: fieldID(f, c.ID, vcard.FieldTelephone, i), Number: v, Label: f.Params.Get(vcard.ParamType)})
		}
	}
	for i, f := range card[vcard.FieldEmail] {
		if v := strings.TrimSpace(f.Value); v != "" {
			c.Emails = append(c.Emails, Email{ID: fieldID(f, c.ID, vcard.FieldEmail, i), Address: v, Label: f.Params.Get(vcard.ParamType)})
		}
	}
	for i, a := range card.Addresses() {
		addr := Address{
			Street:     a.StreetAddress,
			Locality:   a.Locality,
			Region:     a.Region,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}
		// Addresses() may synthesize entries without a backing field.
		if a.Field != nil {
			addr.ID = fieldID(a.Field, c.ID, vcard.FieldAddress, i)
			addr.Label = a.Params.Get(vcard.ParamType)
		} else {
			addr.ID = stableID(fmt.Sprintf(config.FormatFieldKey, c.ID, vcard.FieldAddress, i, addr.Display()))
		}
		if !addr.IsEmpty() {
			c.Addresses = append(c.Addresses, addr)
		}
	}

	return c
}

// cardName applies FN (Formatted) > N (Structured). Empty means absent.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join(strings.Fields(n.GivenName+" "+n.FamilyName), " "))
	}
	return ""
}

// derivedCardID names a card that carries no UID. The ID only depends on the card's
// content, so importing the same source twice updates the contact instead of
// duplicating it. Two UID-less cards with the same name, first phone and first email
// collapse into one contact.
func derivedCardID(card vcard.Card, name string) string {
	key := fmt.Sprintf(config.FormatCardKey,
		normalizeKey(name),
		normalizeKey(strings.ReplaceAll(card.Value(vcard.FieldTelephone), " ", "")),
		normalizeKey(card.Value(vcard.FieldEmail)))
	return stableID(key)
}

// fieldID returns the X-ID of a record written by EncodeVCards. Foreign cards have none,
// so the ID is derived from the owning contact, the property, its position and value.
func fieldID(f *vcard.Field, contactID, property string, index int) string {
	if f.Params != nil {
		if id := f.Params.Get(config.VCardParamID); id != "" {
			return id
		}
	}
	return stableID(fmt.Sprintf(config.FormatFieldKey, contactID, property, index, strings.TrimSpace(f.Value)))
}

func stableID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(config.UIDSalt+key)).String()
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// EncodeVCards writes contacts as vCard 4.0.
func EncodeVCards(w io.Writer, contacts []Contact) error {
	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		if err := enc.Encode(contactToCard(c)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func contactToCard(c Contact) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldUID, c.ID) // derived IDs are written back, so they become real UIDs

	// FN is mandatory in vCard 4.0, so it is written even when empty.
	card.SetValue(vcard.FieldFormattedName, c.Name)
	if c.Color != "" {
		card.SetValue(config.VCardColor, c.Color)
	}
	if c.Birthday != nil {
		card.SetValue(vcard.FieldBirthday, FormatBirthday(*c.Birthday, c.BirthYearKnown))
	}

	for _, p := range c.Phones {
		card.Add(vcard.FieldTelephone, &vcard.Field{Value: p.Number, Params: recordParams(p.ID, p.Label)})
	}
	for _, e := range c.Emails {
		card.Add(vcard.FieldEmail, &vcard.Field{Value: e.Address, Params: recordParams(e.ID, e.Label)})
	}
	for _, a := range c.Addresses {
		card.AddAddress(&vcard.Address{
			Field:         &vcard.Field{Params: recordParams(a.ID, a.Label)},
			StreetAddress: a.Street,
			Locality:      a.Locality,
			Region:        a.Region,
			PostalCode:    a.PostalCode,
			Country:       a.Country,
		})
	}
	return card
}

func recordParams(id, label string) vcard.Params {
	// X-ID keeps record identity across save and reload.
	params := make(vcard.Params)
	params.Set(config.VCardParamID, id)
	if label != "" {
		params.Set(vcard.ParamType, label)
	}
	return params
}
