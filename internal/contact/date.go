package contact

import (
	"errors"
	"strings"
	"time"

	"github.com/tartampluch/go-contactinfo/internal/config"
)

// ParseDate handles the vCard BDAY formats and plain user input.
// It reports whether the year was present; truncated dates land on config.DefaultLeapYear
// so that --02-29 stays valid.
func ParseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	// Full dates: vCard 4 extended and basic forms, plus the timestamps some
	// exporters write for BDAY.
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (--MM-DD, --MMDD) used when the year of birth is unknown.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			// time.Parse puts these in year 0, which has no Feb 29.
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

// FormatBirthday renders a birthday the way it is written back to vCard BDAY.
func FormatBirthday(t time.Time, yearKnown bool) string {
	if !yearKnown {
		return t.Format(config.DateFormatNoYearD)
	}
	return t.Format(config.DateFormatFullDash)
}
