package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Fingerprint derives a stable device identity from four pieces of
// request metadata: the user agent, the client address, the
// Accept-Language header and the Sec-CH-UA-Platform hint. Identical
// inputs always produce the same digest. There is no salt; the value
// identifies a device, it is not a secret.
func Fingerprint(userAgent, clientIP, acceptLang, platform string) string {
	sum := md5.Sum([]byte(userAgent + clientIP + acceptLang + platform))
	return hex.EncodeToString(sum[:])
}

// DeviceName classifies a user agent into a coarse device label. The
// label carries the first 8 characters of the fingerprint so devices of
// the same class stay distinguishable. Agents that are neither a web
// browser nor a recognized API client collapse to "unknown_device"
// without a suffix.
func DeviceName(userAgent, fingerprint string) string {
	short := fingerprint
	if len(short) > 8 {
		short = short[:8]
	}
	switch {
	case strings.Contains(userAgent, "Mozilla"):
		switch {
		case strings.Contains(userAgent, "Chrome"):
			return "chrome_" + short
		case strings.Contains(userAgent, "Firefox"):
			return "firefox_" + short
		default:
			return "browser_" + short
		}
	case strings.Contains(userAgent, "PostmanRuntime"):
		return "postman_" + short
	default:
		return "unknown_device"
	}
}
