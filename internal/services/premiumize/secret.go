package premiumize

import (
	"fmt"
	"io"
	"math"
)

const redactedText = "[REDACTED]"

// Secret holds a credential. Every fmt verb and marshaler prints it as
// [REDACTED]; the raw value is only reachable through Reveal.
type Secret struct {
	value string
}

// NewSecret wraps a raw credential.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Reveal returns the raw credential. Only the transport should need this.
func (s Secret) Reveal() string {
	return s.value
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return redactedText
}

func (s Secret) GoString() string {
	return "premiumize.Secret(" + redactedText + ")"
}

// Format implements fmt.Formatter so that no verb, including %x and %q, reaches the raw value.
func (s Secret) Format(f fmt.State, verb rune) {
	_, _ = io.WriteString(f, redactedText)
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redactedText), nil
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedText + `"`), nil
}

const (
	DefaultRevealLeading  = 0.2
	DefaultRevealTrailing = 0.2
	DefaultRedactMarker   = "***"
)

// Redactor turns a secret into a partially masked display form.
type Redactor struct {
	// Leading and Trailing are the fractions of the secret shown at each end.
	Leading  float64
	Trailing float64
	Marker   string
}

// DefaultRedactor returns the redactor used unless WithRedactor overrides it.
func DefaultRedactor() Redactor {
	return Redactor{
		Leading:  DefaultRevealLeading,
		Trailing: DefaultRevealTrailing,
		Marker:   DefaultRedactMarker,
	}
}

// Redact returns the display form of secret. At least one rune is always
// masked, so the result never equals a non-empty input.
func (r Redactor) Redact(secret string) string {
	runes := []rune(secret)
	n := len(runes)
	if n == 0 {
		return ""
	}

	marker := r.Marker
	if marker == "" {
		marker = DefaultRedactMarker
	}

	lead := revealCount(n, r.Leading)
	trail := revealCount(n, r.Trailing)
	for lead+trail > n-1 {
		if trail > 0 {
			trail--
		} else {
			lead--
		}
	}

	masked := string(runes[lead : n-trail])
	if masked == marker {
		// the secret already contains the marker where it would go
		if lead+trail == 0 {
			return marker + marker
		}
		return marker
	}

	return string(runes[:lead]) + marker + string(runes[n-trail:])
}

func revealCount(n int, fraction float64) int {
	if fraction <= 0 || math.IsNaN(fraction) {
		return 0
	}
	if fraction >= 1 {
		return n
	}
	return int(math.Floor(float64(n) * fraction))
}
