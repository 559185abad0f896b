package utils

import "testing"

func TestIsOriginAllowed(t *testing.T) {
	cases := []struct {
		name      string
		origin    string
		allowlist []string
		want      bool
	}{
		{"wildcard allows anything", "http://evil.example", []string{"*"}, true},
		{"exact match", "http://localhost:3000", []string{"http://localhost:3000"}, true},
		{"listed among others", "http://app.snaphub.io", []string{"http://localhost:3000", "http://app.snaphub.io"}, true},
		{"not listed", "http://other.example", []string{"http://localhost:3000"}, false},
		{"empty allowlist", "http://localhost:3000", nil, false},
		{"no partial match", "http://localhost:3000", []string{"http://localhost"}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsOriginAllowed(c.origin, c.allowlist); got != c.want {
				t.Errorf("IsOriginAllowed(%q, %v) = %v, want %v", c.origin, c.allowlist, got, c.want)
			}
		})
	}
}
