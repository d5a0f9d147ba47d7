package recovery

import "unicode"

// Checks holds the three password requirements, recomputed on every
// keystroke of the new password.
type Checks struct {
	Length    bool // at least 8 characters
	HasDigit  bool
	MixedCase bool // at least one lowercase and one uppercase letter
}

// CheckPassword evaluates the requirements for the given password.
func CheckPassword(password string) Checks {
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return Checks{
		Length:    len([]rune(password)) >= 8,
		HasDigit:  hasDigit,
		MixedCase: hasLower && hasUpper,
	}
}

// AllPassed reports whether every requirement is met. Submission of the
// reset form is gated on this.
func (c Checks) AllPassed() bool {
	return c.Length && c.HasDigit && c.MixedCase
}

// Score counts the satisfied requirements, 0 through 3.
func (c Checks) Score() int {
	n := 0
	for _, ok := range []bool{c.Length, c.HasDigit, c.MixedCase} {
		if ok {
			n++
		}
	}
	return n
}

// Strength buckets the score for display. It is informational only and
// never a submission gate.
type Strength int

const (
	StrengthVeryWeak Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthVeryWeak:
		return "very weak"
	case StrengthWeak:
		return "weak"
	case StrengthMedium:
		return "medium"
	case StrengthStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// Strength maps the score to a display bucket: 0 is very weak, then one
// third weak, two thirds medium, everything above strong.
func (c Checks) Strength() Strength {
	switch c.Score() {
	case 0:
		return StrengthVeryWeak
	case 1:
		return StrengthWeak
	case 2:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}
