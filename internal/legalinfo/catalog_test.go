package legalinfo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zangerai/zanger/internal/domain"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.Len(t, c.List(), 5)
}

func TestGet(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	r, err := c.Get("crc-rk")
	require.NoError(t, err)
	require.Equal(t, "law", r.Kind)
	require.Equal(t, "Уголовный кодекс Республики Казахстан", r.TitleRU)

	_, err = c.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearch(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	// Empty term returns everything.
	require.Len(t, c.Search(""), 5)
	require.Len(t, c.Search("   "), 5)

	// Case-insensitive match across both languages.
	results := c.Search("мошенничест")
	require.Len(t, results, 2)

	results = c.Search("TAX")
	require.NotEmpty(t, results)
	for _, r := range results {
		require.Contains(t, []string{"tax-code-rk"}, r.ID)
	}

	require.Empty(t, c.Search("космос"))
}

func TestLocalizedAccessors(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	r, err := c.Get("art-190-commentary")
	require.NoError(t, err)
	require.Equal(t, r.TitleRU, r.Title(domain.LanguageRU))
	require.Equal(t, r.TitleEN, r.Title(domain.LanguageEN))
	require.Equal(t, r.DescriptionEN, r.Description(domain.LanguageEN))
}
