package config_test

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-contactinfo/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"FallbackName", config.FallbackName},
		{"ICalProdid", config.ICalProdid},
		{"VCardVersion", config.VCardVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestFallbackColors keeps the two fallbacks distinct and well formed.
func TestFallbackColors(t *testing.T) {
	hex := regexp.MustCompile(`^[0-9A-F]{6}$`)

	assert.Equal(t, "C70039", config.DefaultNavColor)
	assert.Equal(t, "008B8B", config.DefaultEditColor)
	assert.NotEqual(t, config.DefaultNavColor, config.DefaultEditColor)

	assert.GreaterOrEqual(t, len(config.ColorPalette), 2, "Color action needs at least two choices")
	for _, c := range config.ColorPalette {
		assert.Regexp(t, hex, c)
	}
}

func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 5, config.SectionCount)
	assert.Equal(t, "John Doe", config.FallbackName)
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-ContactInfo/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
