package shopping

import (
	"strings"
	"testing"

	"foodgram/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMergesByName(t *testing.T) {
	// recipe A: salt 10g; recipe B: salt 5g, pepper 2g
	lineItems := []models.RecipeIngredient{
		{Name: "Salt", MeasurementUnit: "g", Amount: 10},
		{Name: "Salt", MeasurementUnit: "g", Amount: 5},
		{Name: "Pepper", MeasurementUnit: "g", Amount: 2},
	}

	items := Aggregate(lineItems)
	require.Len(t, items, 2)
	assert.Equal(t, Item{Name: "Salt", Amount: 15, MeasurementUnit: "g"}, items[0])
	assert.Equal(t, Item{Name: "Pepper", Amount: 2, MeasurementUnit: "g"}, items[1])
}

func TestAggregateKeepsEncounterOrder(t *testing.T) {
	lineItems := []models.RecipeIngredient{
		{Name: "Flour", MeasurementUnit: "g", Amount: 200},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 100},
		{Name: "Egg", MeasurementUnit: "pcs", Amount: 2},
		{Name: "Milk", MeasurementUnit: "ml", Amount: 50},
		{Name: "Flour", MeasurementUnit: "g", Amount: 100},
	}

	items := Aggregate(lineItems)
	require.Len(t, items, 3)
	assert.Equal(t, "Flour", items[0].Name)
	assert.Equal(t, "Milk", items[1].Name)
	assert.Equal(t, "Egg", items[2].Name)
	assert.Equal(t, 300, items[0].Amount)
	assert.Equal(t, 150, items[1].Amount)
}

func TestRenderReport(t *testing.T) {
	items := []Item{
		{Name: "Salt", Amount: 15, MeasurementUnit: "g"},
		{Name: "Pepper", Amount: 2, MeasurementUnit: "g"},
	}

	report := Render(items)
	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Список покупок Foodgram", lines[0])
	assert.Equal(t, "Salt 15 g", lines[1])
	assert.Equal(t, "Pepper 2 g", lines[2])
}

func TestRenderEmptyCart(t *testing.T) {
	report := Render(Aggregate(nil))
	assert.Equal(t, Header+"\n", report)
}
