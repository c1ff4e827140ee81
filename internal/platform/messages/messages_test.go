package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allIDs = []string{
	ConnectSuccess,
	ConnectMissing,
	SubmitNotConnected,
	SubmitNoValid,
	SubmitInvalidAge,
	SubmitSuccess,
	SubmitDiscarded,
	SubmitError,
	EntryRemoveLast,
}

// Cada locale debe definir todos los ids.
func TestLocales_Integrity(t *testing.T) {
	entries, err := localeFS.ReadDir("locales")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, e := range entries {
		raw, err := localeFS.ReadFile("locales/" + e.Name())
		require.NoError(t, err)

		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m), e.Name())

		for _, id := range allIDs {
			_, ok := m[id]
			assert.True(t, ok, "%s missing %s", e.Name(), id)
		}
	}
}

func TestCatalog_DefaultEnglish(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "es"}, c.Languages())

	p := c.For()
	assert.Equal(t, "⚠️ Please connect to database first!", p.Text(SubmitNotConnected, nil))
	assert.Equal(t, "✅ Successfully saved 1 record to database!", p.Count(SubmitSuccess, 1))
	assert.Equal(t, "✅ Successfully saved 3 records to database!", p.Count(SubmitSuccess, 3))
	assert.Equal(t, "❌ Error saving to database: boom", p.Text(SubmitError, map[string]any{"Detail": "boom"}))
}

func TestCatalog_AcceptLanguage(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	p := c.For("es-AR,es;q=0.9,en;q=0.8")
	assert.Equal(t, "⚠️ ¡Primero conecta la base de datos!", p.Text(SubmitNotConnected, nil))

	// idioma no soportado => default
	p = c.For("de")
	assert.Equal(t, "⚠️ Please enter both URL and API Key", p.Text(ConnectMissing, nil))
}

func TestPrinter_MissingID(t *testing.T) {
	c, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "nope", c.For().Text("nope", nil))
	assert.Equal(t, "x", Printer{}.Text("x", nil))
}
