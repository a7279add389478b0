package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	firefoxUA = "Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0"
	safariUA  = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15"
	postmanUA = "PostmanRuntime/7.36.0"
)

func TestFingerprintIsDeterministic(t *testing.T) {
	a := Fingerprint(chromeUA, "10.0.0.1", "en-US", `"Windows"`)
	b := Fingerprint(chromeUA, "10.0.0.1", "en-US", `"Windows"`)
	assert.Equal(t, a, b)
	assert.Len(t, a, 32) // hex md5

	// Any metadata change yields a different device identity.
	c := Fingerprint(chromeUA, "10.0.0.2", "en-US", `"Windows"`)
	assert.NotEqual(t, a, c)
}

func TestDeviceNameClassification(t *testing.T) {
	fp := Fingerprint(chromeUA, "10.0.0.1", "en-US", `"Windows"`)

	cases := []struct {
		name   string
		ua     string
		prefix string
	}{
		{"chrome", chromeUA, "chrome_"},
		{"firefox", firefoxUA, "firefox_"},
		{"other browser", safariUA, "browser_"},
		{"postman", postmanUA, "postman_"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeviceName(tc.ua, fp)
			assert.True(t, strings.HasPrefix(got, tc.prefix), "got %q", got)
			assert.Equal(t, tc.prefix+fp[:8], got)
		})
	}
}

func TestDeviceNameUnknownHasNoSuffix(t *testing.T) {
	fp := Fingerprint("curl/8.5.0", "10.0.0.1", "", "")
	assert.Equal(t, "unknown_device", DeviceName("curl/8.5.0", fp))
}

func TestDeviceNameSameDeviceSameLabel(t *testing.T) {
	// Two logins with identical metadata reuse the same label.
	fp1 := Fingerprint(firefoxUA, "192.168.1.9", "de-DE", `"Linux"`)
	fp2 := Fingerprint(firefoxUA, "192.168.1.9", "de-DE", `"Linux"`)
	assert.Equal(t, DeviceName(firefoxUA, fp1), DeviceName(firefoxUA, fp2))
}
