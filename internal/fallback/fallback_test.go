package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func value(s string) Attempt[string] {
	return func() (string, bool) { return s, true }
}

func absent() (string, bool) { return "", false }

func TestFirstStopsAtFirstValidValue(t *testing.T) {
	calls := 0
	counted := func(s string) Attempt[string] {
		return func() (string, bool) {
			calls++
			return s, true
		}
	}

	got, ok := Text(absent, counted("   "), counted("second"), counted("third"))
	assert.True(t, ok)
	assert.Equal(t, "second", got)
	assert.Equal(t, 2, calls, "attempts after the winner are not evaluated")
}

func TestFirstRecoversPanics(t *testing.T) {
	boom := func() (string, bool) { panic("malformed state") }
	var nilMap map[string]any
	nilWrite := func() (string, bool) {
		nilMap["x"] = 1
		return "", false
	}

	got, ok := Text(boom, nilWrite, nil, value("  survivor "))
	assert.True(t, ok)
	assert.Equal(t, "survivor", got)
}

func TestFirstExhausted(t *testing.T) {
	got, ok := Text(absent, value(""))
	assert.False(t, ok)
	assert.Equal(t, "", got)

	n, ok := First[int](nil)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestFirstPredicate(t *testing.T) {
	long := func(s string) bool { return len(s) > 3 }
	got, ok := First(long, value("abc"), value("abcd"))
	assert.True(t, ok)
	assert.Equal(t, "abcd", got)

	n, ok := First(nil, func() (int, bool) { return 7, true })
	assert.True(t, ok, "nil predicate accepts any value")
	assert.Equal(t, 7, n)
}
