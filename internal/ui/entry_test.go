package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-contactinfo/internal/ui"
)

func TestNumericalEntry_TypedRune(t *testing.T) {
	entry := ui.NewNumericalEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "80a8-1 ")
	assert.Equal(t, "8081", entry.Text)
	assert.Equal(t, mobile.NumberKeyboard, entry.Keyboard())
}

func TestPhoneEntry_TypedRune(t *testing.T) {
	entry := ui.NewPhoneEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"International", "+44 20 7946 0958", "+44 20 7946 0958"},
		{"Extension", "(555) 010-99#12*", "(555) 010-99#12*"},
		{"DropsLetters", "call 555 now", " 555 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry.SetText("")
			test.Type(entry, tt.input)
			assert.Equal(t, tt.want, entry.Text)
		})
	}
}

func TestPhoneEntry_SetTextIsNotFiltered(t *testing.T) {
	entry := ui.NewPhoneEntry()
	entry.SetText("ext. 42")
	assert.Equal(t, "ext. 42", entry.Text, "Programmatic text bypasses the rune filter")
}
