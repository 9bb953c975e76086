package source

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/job-capture/internal/page"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestPath(t *testing.T) {
	root := decode(t, `{"a":{"list":[{"name":"first"},{"name":"second"}],"nil":null}}`)

	v, ok := Path(root, "a", "list", "1", "name")
	require.True(t, ok)
	assert.Equal(t, "second", v)

	for _, keys := range [][]string{
		{"missing"},
		{"a", "list", "9"},
		{"a", "list", "x"},
		{"a", "list", "0", "name", "deeper"},
		{"a", "nil"},
	} {
		_, ok := Path(root, keys...)
		assert.False(t, ok, "%v", keys)
	}
}

func TestScalarReaders(t *testing.T) {
	s, ok := String(map[string]any{"@value": "  wrapped\n value "})
	assert.True(t, ok)
	assert.Equal(t, "wrapped value", s)

	_, ok = String("   ")
	assert.False(t, ok)
	_, ok = String(42.0)
	assert.False(t, ok)

	n, ok := Number("120,000")
	assert.True(t, ok)
	assert.Equal(t, 120000.0, n)
	_, ok = Number("$120k")
	assert.False(t, ok)

	b, ok := Bool("true")
	assert.True(t, ok)
	assert.True(t, b)
	_, ok = Bool("maybe")
	assert.False(t, ok)

	first, ok := FirstElement([]any{"x", "y"})
	assert.True(t, ok)
	assert.Equal(t, "x", first)
	_, ok = FirstElement([]any{})
	assert.False(t, ok)
}

func TestStateReaders(t *testing.T) {
	globals := map[string]any{
		"__appData": decode(t, `{"posting":{"title":"Engineer","isRemote":true,"salary":"95000"}}`),
	}
	p := page.New("https://jobs.ashbyhq.com/acme/1", nil, globals, time.Now())

	title, ok := StateString(p, "__appData", "posting", "title")
	assert.True(t, ok)
	assert.Equal(t, "Engineer", title)

	remote, ok := StateBool(p, "__appData", "posting", "isRemote")
	assert.True(t, ok)
	assert.True(t, remote)

	salary, ok := StateNumber(p, "__appData", "posting", "salary")
	assert.True(t, ok)
	assert.Equal(t, 95000.0, salary)

	_, ok = StateString(p, "__missing", "posting")
	assert.False(t, ok)
	_, ok = StateString(p, "__appData", "posting", "isRemote")
	assert.False(t, ok, "wrong shape is absent")
}
