package premiumize

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretNeverFormatsRawValue(t *testing.T) {
	s := NewSecret("super-secret-key")

	outputs := []string{
		fmt.Sprint(s),
		fmt.Sprintf("%s", s),
		fmt.Sprintf("%v", s),
		fmt.Sprintf("%+v", s),
		fmt.Sprintf("%#v", s),
		fmt.Sprintf("%q", s),
		fmt.Sprintf("%x", s),
		fmt.Sprintf("%v", struct{ Key Secret }{s}),
		s.String(),
	}
	for _, out := range outputs {
		if strings.Contains(out, "super-secret-key") {
			t.Errorf("raw secret leaked: %s", out)
		}
	}

	data, err := json.Marshal(struct {
		Key Secret `json:"key"`
	}{s})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"key":"[REDACTED]"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	if s.Reveal() != "super-secret-key" {
		t.Errorf("expected Reveal to return the raw value, got %q", s.Reveal())
	}
}

func TestSecretIsZero(t *testing.T) {
	if !NewSecret("").IsZero() {
		t.Error("expected empty secret to be zero")
	}
	if NewSecret("k").IsZero() {
		t.Error("expected non-empty secret not to be zero")
	}
}

func TestRedact(t *testing.T) {
	r := DefaultRedactor()

	tests := []struct {
		secret   string
		expected string
	}{
		{"", ""},
		{"a", "***"},
		{"ab", "***"},
		{"abc", "***"},
		{"abcd", "***"},
		{"abcde", "a***e"},
		{"abcdefghij", "ab***ij"},
		{"abcdefghijklmnopqrst", "abcd***qrst"},
		{"***", "******"},
		{"a***e", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.secret, func(t *testing.T) {
			got := r.Redact(tt.secret)
			if got != tt.expected {
				t.Errorf("Redact(%q) = %q, expected %q", tt.secret, got, tt.expected)
			}
		})
	}
}

func TestRedactNeverReturnsInput(t *testing.T) {
	redactors := []Redactor{
		DefaultRedactor(),
		{Leading: 0.49, Trailing: 0.49, Marker: "*"},
		{Leading: 0.9, Trailing: 0, Marker: "#"},
		{Leading: 0, Trailing: 0, Marker: ""},
		{Leading: 2, Trailing: 2, Marker: "..."},
	}
	inputs := []string{"x", "xy", "xyz", "***", "*", "#", "...", "key-1234", "ключ-секрет", strings.Repeat("z", 64)}

	for _, r := range redactors {
		for _, in := range inputs {
			out := r.Redact(in)
			if out == in {
				t.Errorf("redactor %+v returned input %q unchanged", r, in)
			}
		}
	}
}

func TestRedactKeepsRunesIntact(t *testing.T) {
	r := Redactor{Leading: 0.25, Trailing: 0.25, Marker: "*"}
	got := r.Redact("ключсекр")
	if got != "кл*кр" {
		t.Errorf("expected rune-aware redaction, got %q", got)
	}
}
