package recovery

import "strings"

// CodeLength is the number of digits in a recovery code.
const CodeLength = 6

// CodeInput manages the fixed-length array of single-digit cells backing the
// one-time-code entry, including which cell currently holds input focus.
// A cell mutation and its consequent focus move happen in one call, so the
// caller never observes them apart.
type CodeInput struct {
	cells [CodeLength]string
	focus int
}

func NewCodeInput() *CodeInput {
	return &CodeInput{}
}

// SetDigit stores the first digit of rawValue at index and advances focus to
// the next cell. Non-digit characters are stripped; when nothing remains the
// cell is emptied. Out-of-range indexes are ignored.
func (c *CodeInput) SetDigit(index int, rawValue string) {
	if index < 0 || index >= CodeLength {
		return
	}

	digits := digitsOnly(rawValue)
	if digits == "" {
		c.cells[index] = ""
		return
	}

	// Multi-character typed or auto-filled input truncates to one digit.
	c.cells[index] = digits[:1]
	if index < CodeLength-1 {
		c.focus = index + 1
	}
}

// HandleBackspace moves focus to the previous cell when backspace is hit on
// an already-empty cell. Deleting a non-empty cell is native input behavior
// and does not move focus.
func (c *CodeInput) HandleBackspace(index int) {
	if index <= 0 || index >= CodeLength {
		return
	}
	if c.cells[index] == "" {
		c.focus = index - 1
	}
}

// Paste writes up to CodeLength digits from rawText left-to-right starting
// at cell 0, overwriting those positions and leaving the rest untouched.
// Focus lands on the last cell that received a digit.
func (c *CodeInput) Paste(rawText string) {
	digits := digitsOnly(rawText)
	if len(digits) > CodeLength {
		digits = digits[:CodeLength]
	}
	if digits == "" {
		return
	}

	for i := 0; i < len(digits); i++ {
		c.cells[i] = digits[i : i+1]
	}
	c.focus = len(digits) - 1
}

// Clear empties every cell and returns focus to the first one.
func (c *CodeInput) Clear() {
	c.cells = [CodeLength]string{}
	c.focus = 0
}

// IsComplete reports whether all cells hold a digit.
func (c *CodeInput) IsComplete() bool {
	for _, cell := range c.cells {
		if cell == "" {
			return false
		}
	}
	return true
}

// Joined concatenates the cells in order. Partial codes are the server's
// problem, not this component's; callers may join at any time.
func (c *CodeInput) Joined() string {
	return strings.Join(c.cells[:], "")
}

// Focus returns the index of the cell that currently holds input focus.
func (c *CodeInput) Focus() int {
	return c.focus
}

// Cells returns a copy of the cell values.
func (c *CodeInput) Cells() [CodeLength]string {
	return c.cells
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
