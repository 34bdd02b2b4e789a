package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIngredients(t *testing.T) {
	csv := "name,measurement_unit\nабрикосы,г\nмолоко,мл\n"

	ingredients, err := parseIngredients(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ingredients, 2)

	assert.Equal(t, "Абрикосы", ingredients[0].Name)
	assert.Equal(t, "г", ingredients[0].MeasurementUnit)
	assert.Equal(t, "Молоко", ingredients[1].Name)
}

func TestParseIngredientsSkipsMalformedRows(t *testing.T) {
	csv := "name,measurement_unit\nсоль,г\nсахар\n"

	ingredients, err := parseIngredients(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Соль", ingredients[0].Name)
}

func TestParseTags(t *testing.T) {
	csv := "name,color,slug\nЗавтрак,#E26C2D,breakfast\nУжин,#8775D2,dinner\n"

	tags, err := parseTags(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, tags, 2)

	assert.Equal(t, "Завтрак", tags[0].Name)
	assert.Equal(t, "#E26C2D", tags[0].Color)
	assert.Equal(t, "breakfast", tags[0].Slug)
	assert.Equal(t, "dinner", tags[1].Slug)
}

func TestParseEmptyFileFails(t *testing.T) {
	_, err := parseIngredients(strings.NewReader(""))
	assert.Error(t, err)
}
