package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserAgent(t *testing.T) {
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 16_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.1 Mobile/15E148 Safari/604.1"

	info := ParseUserAgent(ua, "ja-JP,ja;q=0.9,en;q=0.8")
	require.NotNil(t, info)
	assert.Equal(t, "Phone", info.Device)
	assert.Contains(t, info.OS, "iOS")
	assert.Contains(t, info.Browser, "Safari")
	assert.Equal(t, "ja-JP", info.Locale)
}

func TestParseUserAgent_LocaleWithQuality(t *testing.T) {
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	info := ParseUserAgent(ua, "en;q=0.8")
	require.NotNil(t, info)
	assert.Equal(t, "Computer", info.Device)
	assert.Equal(t, "en", info.Locale)
}
