// Package fallback evaluates ordered extraction attempts: the first attempt
// that yields a value accepted by the field's predicate wins.
package fallback

import (
	"log/slog"
	"strings"

	"github.com/baxromumarov/job-capture/internal/observability"
)

// Attempt reads one source. A false second result means "no value".
type Attempt[T any] func() (T, bool)

// First runs attempts in order and returns the first valid value. A panic
// inside an attempt counts as "no value" and the chain moves on.
func First[T any](valid func(T) bool, attempts ...Attempt[T]) (T, bool) {
	for i, attempt := range attempts {
		if attempt == nil {
			continue
		}
		v, ok := try(i, attempt)
		if ok && (valid == nil || valid(v)) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Text is First over strings with a non-blank predicate; the result is trimmed.
func Text(attempts ...Attempt[string]) (string, bool) {
	v, ok := First(NonBlank, attempts...)
	return strings.TrimSpace(v), ok
}

func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func try[T any](index int, attempt Attempt[T]) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("extraction attempt recovered", "attempt", index, "panic", r)
			observability.IncRecovered()
			var zero T
			v, ok = zero, false
		}
	}()
	return attempt()
}
