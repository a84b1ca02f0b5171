// Package export renders the address book as a vCard file and a birthday iCalendar feed.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-contactinfo/internal/config"
	"github.com/tartampluch/go-contactinfo/internal/contact"
)

// Bundle is one immutable export generation.
type Bundle struct {
	VCard   []byte
	ICS     []byte
	Events  int
	BuiltAt time.Time
}

// Builder converts contacts into a Bundle.
type Builder struct {
	Clock Clock

	// FormatSummary lets the UI inject localized event titles.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// Build encodes every contact as vCard and every known birthday as all-day events.
func (b *Builder) Build(contacts []contact.Contact) (Bundle, error) {
	now := b.now()

	var vcf bytes.Buffer
	if err := contact.EncodeVCards(&vcf, contacts); err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", config.ErrExportFailed, err)
	}

	ics, events, err := b.calendar(contacts, now)
	if err != nil {
		return Bundle{}, fmt.Errorf("%s: %w", config.ErrExportFailed, err)
	}

	slog.Info(config.MsgExportBuilt,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyCount, len(contacts),
		config.LogKeyEvents, events)

	return Bundle{VCard: vcf.Bytes(), ICS: ics, Events: events, BuiltAt: now}, nil
}

func (b *Builder) now() time.Time {
	if b.Clock == nil {
		return time.Now()
	}
	return b.Clock.Now()
}

func (b *Builder) calendar(contacts []contact.Contact, now time.Time) ([]byte, int, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	// Dates follow the local calendar; only the stamp is UTC.
	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(now.UTC())

	for i := range contacts {
		c := &contacts[i]
		if c.Birthday == nil {
			continue
		}
		for _, e := range b.events(c, now) {
			e.Props.Set(stamp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), len(cal.Children), nil
}

// events yields one event per year around now, never before the birth year.
func (b *Builder) events(c *contact.Contact, now time.Time) []*ical.Event {
	birth := *c.Birthday
	base := EventUIDBase(c.ID, birth)
	loc := now.Location()

	var out []*ical.Event
	for y := now.Year() - config.BirthdayEventSpan; y <= now.Year()+config.BirthdayEventSpan; y++ {
		if c.BirthYearKnown && y < birth.Year() {
			continue
		}

		age := 0
		if c.BirthYearKnown {
			age = y - birth.Year()
		}

		summary := fmt.Sprintf(config.FallbackSummary, displayName(c))
		if b.FormatSummary != nil {
			summary = b.FormatSummary(displayName(c), age, c.BirthYearKnown)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, base, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary)

		start := ical.NewProp(config.PropDTStart)
		start.SetDate(time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(start)

		out = append(out, event)
	}
	return out
}

// EventUIDBase derives a stable name-based UUID so calendar clients keep
// their event state across regenerations.
func EventUIDBase(contactID string, birth time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, contactID, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(input)).String()
}

// NextBirthday returns the next occurrence of birth on or after today and the
// age turned then (zero when the year is unknown).
func NextBirthday(now, birth time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// time.Date rolls Feb 29 into Mar 1 on common years.
	next := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	if next.Before(today) {
		next = time.Date(now.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}

	age := 0
	if yearKnown {
		age = next.Year() - birth.Year()
	}
	return next, age
}

func displayName(c *contact.Contact) string {
	if c.Name == "" {
		return config.FallbackName
	}
	return c.Name
}
