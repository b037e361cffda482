package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonboulle/clockwork"
)

// ExportScopeAll signs the download link for every registration.
const ExportScopeAll = "export:all"

// NowISO renders the clock's current time in UTC, millisecond precision,
// matching JavaScript's Date.toISOString.
func NowISO(clock clockwork.Clock) string {
	return clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func HMACSHA256Hex(secret, msg string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidToken reports whether token is the signature of scope under secret.
func ValidToken(secret, scope, token string) bool {
	expected := HMACSHA256Hex(secret, scope)
	return hmac.Equal([]byte(expected), []byte(token))
}

// ExportURL builds the signed link for the full registrations download.
func ExportURL(baseURL, httpAddr, secret string) string {
	if baseURL == "" {
		baseURL = "http://localhost" + httpAddr
	}
	return baseURL + "/export/registrations.csv?token=" + HMACSHA256Hex(secret, ExportScopeAll)
}

// Sleep waits for d on clock or until done is closed.
func Sleep(clock clockwork.Clock, d time.Duration, done <-chan struct{}) bool {
	select {
	case <-clock.After(d):
		return true
	case <-done:
		return false
	}
}
