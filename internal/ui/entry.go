package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-contactinfo/internal/config"
)

// FilteredEntry is an Entry that drops typed runes rejected by Allow.
// Pasted text is not filtered; callers validate on save.
type FilteredEntry struct {
	widget.Entry
	Allow    func(r rune) bool
	keyboard mobile.KeyboardType
}

func newFilteredEntry(allow func(rune) bool, kb mobile.KeyboardType) *FilteredEntry {
	e := &FilteredEntry{Allow: allow, keyboard: kb}
	e.ExtendBaseWidget(e)
	return e
}

// NewNumericalEntry accepts digits only. Used for the server port.
func NewNumericalEntry() *FilteredEntry {
	return newFilteredEntry(isDigit, mobile.NumberKeyboard)
}

// NewPhoneEntry accepts digits and the usual dialing symbols.
func NewPhoneEntry() *FilteredEntry {
	return newFilteredEntry(func(r rune) bool {
		return isDigit(r) || strings.ContainsRune(config.PhoneDialChars, r)
	}, mobile.NumberKeyboard)
}

// TypedRune forwards r only when Allow accepts it.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.Allow == nil || e.Allow(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard selects the mobile keypad.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return e.keyboard
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
