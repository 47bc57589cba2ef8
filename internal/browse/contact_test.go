package browse_test

import (
	"testing"

	"stayhunt/internal/browse"
)

func TestDialURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+91 98765 43210", "tel:+919876543210"},
		{"(0353) 225-4466", "tel:03532254466"},
		{"98765-43210", "tel:9876543210"},
	}
	for _, c := range cases {
		got, err := browse.DialURL(c.in)
		if err != nil || got != c.want {
			t.Errorf("DialURL(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
	}

	for _, bad := range []string{"", "   ", "call me", "+"} {
		if _, err := browse.DialURL(bad); err != browse.ErrNoPhone {
			t.Errorf("DialURL(%q): expected ErrNoPhone, got %v", bad, err)
		}
	}
}

func TestWhatsAppURL(t *testing.T) {
	got, err := browse.WhatsAppURL("+91 98765 43210")
	if err != nil || got != "https://wa.me/919876543210" {
		t.Fatalf("WhatsAppURL = %q, %v", got, err)
	}
	if _, err := browse.WhatsAppURL("n/a"); err != browse.ErrNoPhone {
		t.Fatalf("expected ErrNoPhone, got %v", err)
	}
}

func TestMapURL(t *testing.T) {
	link := "https://maps.google.com/?q=Lataguri+Dooars"
	got, err := browse.MapURL(" " + link + " ")
	if err != nil || got != link {
		t.Fatalf("MapURL = %q, %v", got, err)
	}
	if _, err := browse.MapURL(""); err != browse.ErrNoMapLink {
		t.Fatalf("expected ErrNoMapLink, got %v", err)
	}
}
