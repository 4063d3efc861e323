package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := MustNew()

	require.Equal(t, "Home", r.Resolve("en", "home"))
	require.Equal(t, "Inicio", r.Resolve("es", "home"))
	require.Equal(t, "Catálogo", r.Resolve("es", "catalog"))
}

func TestResolve_MissingKeyReturnsKey(t *testing.T) {
	r := MustNew()
	require.Equal(t, "noSuchKey", r.Resolve("en", "noSuchKey"))
	require.Equal(t, "noSuchKey", r.Resolve("es", "noSuchKey"))
}

func TestResolve_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	r := MustNew()
	for _, lang := range []string{"", "fr", "xx-??", "EN"} {
		require.Equal(t, "Home", r.Resolve(lang, "home"), lang)
	}
	require.Equal(t, "Inicio", r.Resolve("es-MX", "home"))
	require.Equal(t, "Inicio", r.Resolve("ES", "home"))
}

func TestToggle(t *testing.T) {
	require.Equal(t, "es", Toggle("en"))
	require.Equal(t, "en", Toggle("es"))
	require.Equal(t, "es", Toggle("fr"))
	require.Equal(t, "en", Toggle(Toggle("en")))
}

func TestMatch(t *testing.T) {
	r := MustNew()
	require.Equal(t, "es", r.Match("es-MX,es;q=0.9,en;q=0.8"))
	require.Equal(t, "en", r.Match("en-US,en;q=0.9"))
	require.Equal(t, "es", r.Match("fr;q=0.9, es;q=0.8"))
	require.Equal(t, "en", r.Match("de"))
	require.Equal(t, "en", r.Match(""))
}

func TestTablesHaveSameKeys(t *testing.T) {
	r := MustNew()
	missing := r.MissingKeys()
	require.Empty(t, missing["en"])
	require.Empty(t, missing["es"])
	require.Len(t, r.Messages("en"), len(r.Messages("es")))
}

func TestMessages_IsCopy(t *testing.T) {
	r := MustNew()
	m := r.Messages("en")
	m["home"] = "changed"
	require.Equal(t, "Home", r.Resolve("en", "home"))
}
