package coerce

import (
	"fmt"
	"strings"
)

// Mode selects how a failed coercion is resolved.
type Mode int

const (
	// Lenient resolves failures to the target's fallback value.
	Lenient Mode = iota
	// Forced reports failures as a *errors.CoercionError.
	Forced
)

func (m Mode) String() string {
	switch m {
	case Lenient:
		return "lenient"
	case Forced:
		return "forced"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves "lenient" or "forced". An empty string means lenient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return Lenient, nil
	case "forced", "force", "strict":
		return Forced, nil
	}
	return Lenient, fmt.Errorf("unknown mode %q (want lenient or forced)", s)
}
