package browse

import (
	"errors"
	"strings"
)

// Errors for contact actions. These are user-input problems, reported
// separately from network failures.
var (
	ErrNoPhone   = errors.New("no phone number on record")
	ErrNoMapLink = errors.New("no map link on record")
)

// sanitizePhone strips everything but digits, optionally keeping one
// leading +.
func sanitizePhone(raw string, keepPlus bool) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if keepPlus && r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DialURL builds the tel: link for the phone dialer. Non-digits are
// stripped, a leading + survives: "+91 98765-43210" -> "tel:+919876543210".
func DialURL(phone string) (string, error) {
	n := sanitizePhone(strings.TrimSpace(phone), true)
	if n == "" || n == "+" {
		return "", ErrNoPhone
	}
	return "tel:" + n, nil
}

// WhatsAppURL builds the wa.me chat link. The scheme wants digits only, no
// plus.
func WhatsAppURL(phone string) (string, error) {
	n := sanitizePhone(strings.TrimSpace(phone), false)
	if n == "" {
		return "", ErrNoPhone
	}
	return "https://wa.me/" + n, nil
}

// MapURL passes the provider-supplied maps link through verbatim.
func MapURL(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrNoMapLink
	}
	return link, nil
}
