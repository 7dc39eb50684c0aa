package utils

import (
	"net/http/httptest"
	"testing"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.7 ", "", "not-an-ip", "2001:db8::/32"})
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.7", true},
		{"192.168.1.8", false},
		{"::ffff:10.0.0.1", true},
		{"2001:db8::1", true},
		{"2001:db9::1", false},
		{"garbage", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func TestIPMatcherEmpty(t *testing.T) {
	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
	if !NewIPMatcher([]string{" ", "nope"}).IsEmpty() {
		t.Error("only invalid entries should give an empty matcher")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "127.0.0.1:5555"
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

	if got := ClientIP(r, false); got != "127.0.0.1" {
		t.Errorf("untrusted ClientIP = %q, want RemoteAddr host", got)
	}
	if got := ClientIP(r, true); got != "203.0.113.9" {
		t.Errorf("trusted ClientIP = %q, want first forwarded address", got)
	}

	r.Header.Set("CF-Connecting-IP", "198.51.100.2")
	if got := ClientIP(r, true); got != "198.51.100.2" {
		t.Errorf("ClientIP = %q, CF-Connecting-IP should win", got)
	}
}

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"1.2.3.4":           "1.2.3.4",
		"1.2.3.4:80":        "1.2.3.4",
		"[2001:db8::1]:443": "2001:db8::1",
		"[::1]":             "::1",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}
