// Package validate holds the pure input checks domain operations run
// before touching persistence.
package validate

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// NonEmpty reports whether s contains any non-whitespace content.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// EmailShaped reports whether s looks like an email address.
func EmailShaped(s string) bool {
	return validation.Validate(s, validation.Required, is.Email) == nil
}

// MinLength reports whether s is non-empty and at least n characters long.
func MinLength(s string, n int) bool {
	return validation.Validate(s, validation.Required, validation.Length(n, 0)) == nil
}

// Violations collects ordered validation failure messages.
type Violations struct {
	msgs []string
}

// Check records msg when ok is false.
func (v *Violations) Check(ok bool, msg string) {
	if !ok {
		v.msgs = append(v.msgs, msg)
	}
}

// Empty reports whether no violation was recorded.
func (v *Violations) Empty() bool {
	return len(v.msgs) == 0
}

// Messages returns the recorded violations in check order.
func (v *Violations) Messages() []string {
	return v.msgs
}
