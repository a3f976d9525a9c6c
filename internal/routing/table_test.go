package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(t *testing.T) *Table {
	t.Helper()

	table, err := NewTable(
		map[string]string{"zh": "Chinese", "en": "English", "el": "Greek"},
		map[string]map[string]string{
			"zh": {"en": "Helsinki-NLP/opus-mt-zh-en"},
			"en": {"zh": "Helsinki-NLP/opus-mt-en-zh", "el": "Helsinki-NLP/opus-mt-en-el"},
			"el": {"en": "Helsinki-NLP/opus-mt-tc-big-el-en"},
		},
		"en",
	)
	require.NoError(t, err)
	return table
}

func TestNewTable_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		names        map[string]string
		direct       map[string]map[string]string
		intermediate string
		wantErr      string
	}{
		{
			name:    "empty names",
			direct:  map[string]map[string]string{"zh": {"en": "m"}},
			wantErr: "no languages",
		},
		{
			name:         "intermediate not a language",
			names:        map[string]string{"zh": "Chinese", "en": "English"},
			direct:       map[string]map[string]string{"zh": {"en": "m"}},
			intermediate: "fr",
			wantErr:      "intermediate",
		},
		{
			name:         "route references unknown source",
			names:        map[string]string{"zh": "Chinese", "en": "English"},
			direct:       map[string]map[string]string{"fr": {"en": "m"}},
			intermediate: "en",
			wantErr:      "unknown source language",
		},
		{
			name:         "route references unknown target",
			names:        map[string]string{"zh": "Chinese", "en": "English"},
			direct:       map[string]map[string]string{"zh": {"fr": "m"}},
			intermediate: "en",
			wantErr:      "unknown target language",
		},
		{
			name:         "empty model id",
			names:        map[string]string{"zh": "Chinese", "en": "English"},
			direct:       map[string]map[string]string{"zh": {"en": ""}},
			intermediate: "en",
			wantErr:      "model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTable(tt.names, tt.direct, tt.intermediate)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolve_Direct(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	route, err := table.Resolve("zh", "en")
	require.NoError(t, err)
	assert.True(t, route.Direct())
	assert.Equal(t, []string{"Helsinki-NLP/opus-mt-zh-en"}, route.Models)
	assert.Nil(t, route.Hops)
}

func TestResolve_Chained(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	route, err := table.Resolve("zh", "el")
	require.NoError(t, err)
	assert.False(t, route.Direct())
	assert.Equal(t, []string{"Helsinki-NLP/opus-mt-zh-en", "Helsinki-NLP/opus-mt-en-el"}, route.Models)
	assert.Equal(t, []string{"zh-en", "en-el"}, route.Hops)

	// Reverse direction chains through the same intermediate.
	route, err = table.Resolve("el", "zh")
	require.NoError(t, err)
	assert.Equal(t, []string{"Helsinki-NLP/opus-mt-tc-big-el-en", "Helsinki-NLP/opus-mt-en-zh"}, route.Models)
	assert.Equal(t, []string{"el-en", "en-zh"}, route.Hops)
}

func TestResolve_InvalidLanguage(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	_, err := table.Resolve("fr", "en")
	var invalidErr *InvalidLanguageError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "fr", invalidErr.Code)
	assert.ElementsMatch(t, []string{"zh", "en", "el"}, invalidErr.Valid)

	_, err = table.Resolve("en", "xx")
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "xx", invalidErr.Code)
}

func TestResolve_SameLanguage(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	_, err := table.Resolve("en", "en")
	assert.ErrorIs(t, err, ErrSameLanguage)
}

func TestResolve_UnsupportedRoute(t *testing.T) {
	t.Parallel()

	// No el->en direct model, so zh->el cannot chain in reverse either.
	table, err := NewTable(
		map[string]string{"zh": "Chinese", "en": "English", "el": "Greek"},
		map[string]map[string]string{
			"zh": {"en": "m-zh-en"},
			"en": {"zh": "m-en-zh", "el": "m-en-el"},
		},
		"en",
	)
	require.NoError(t, err)

	// Forward chain works through en.
	_, err = table.Resolve("zh", "el")
	require.NoError(t, err)

	// el has no route to the intermediate.
	_, err = table.Resolve("el", "zh")
	var unsupportedErr *UnsupportedRouteError
	require.ErrorAs(t, err, &unsupportedErr)
	assert.Equal(t, "el", unsupportedErr.From)
	assert.Equal(t, "zh", unsupportedErr.To)
}

func TestResolve_NoDoubleHop(t *testing.T) {
	t.Parallel()

	// zh->de would need two hops (zh->en->el->de); only one hop is allowed.
	table, err := NewTable(
		map[string]string{"zh": "Chinese", "en": "English", "el": "Greek", "de": "German"},
		map[string]map[string]string{
			"zh": {"en": "m-zh-en"},
			"en": {"el": "m-en-el"},
			"el": {"de": "m-el-de"},
		},
		"en",
	)
	require.NoError(t, err)

	_, err = table.Resolve("zh", "de")
	var unsupportedErr *UnsupportedRouteError
	require.True(t, errors.As(err, &unsupportedErr))
}

func TestAvailableRoutes(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	routes := table.AvailableRoutes()
	assert.ElementsMatch(t, []string{"en", "el"}, routes["zh"])
	assert.ElementsMatch(t, []string{"zh", "el"}, routes["en"])
	assert.ElementsMatch(t, []string{"en", "zh"}, routes["el"])
}

func TestModelIDs(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	ids := table.ModelIDs()
	assert.Equal(t, []string{
		"Helsinki-NLP/opus-mt-en-el",
		"Helsinki-NLP/opus-mt-en-zh",
		"Helsinki-NLP/opus-mt-tc-big-el-en",
		"Helsinki-NLP/opus-mt-zh-en",
	}, ids)
}

func TestLanguageHelpers(t *testing.T) {
	t.Parallel()
	table := testTable(t)

	assert.True(t, table.IsValidLanguage("zh"))
	assert.False(t, table.IsValidLanguage("fr"))
	assert.Equal(t, "Greek", table.LanguageName("el"))
	assert.Equal(t, "en", table.Intermediate())
	assert.ElementsMatch(t, []string{"zh", "en", "el"}, table.ValidLanguages())
}
