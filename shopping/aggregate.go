package shopping

import (
	"strconv"
	"strings"

	"foodgram/models"
)

// Header is the first line of every shopping-list report.
const Header = "Список покупок Foodgram"

// Item is one aggregated row of the report.
type Item struct {
	Name            string
	Amount          int
	MeasurementUnit string
}

// Aggregate merges line items collected across the cart recipes, grouping
// by ingredient name and summing amounts. Rows come out in encounter
// order; the measurement unit is taken from the first occurrence.
func Aggregate(lineItems []models.RecipeIngredient) []Item {
	index := make(map[string]int, len(lineItems))
	items := make([]Item, 0, len(lineItems))
	for _, li := range lineItems {
		if i, ok := index[li.Name]; ok {
			items[i].Amount += li.Amount
			continue
		}
		index[li.Name] = len(items)
		items = append(items, Item{
			Name:            li.Name,
			Amount:          li.Amount,
			MeasurementUnit: li.MeasurementUnit,
		})
	}
	return items
}

// Render produces the plain-text report: the header line, then one
// "{name} {amount} {unit}" line per aggregated ingredient. An empty cart
// renders the header only.
func Render(items []Item) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	for _, item := range items {
		b.WriteString(item.Name)
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(item.Amount))
		b.WriteByte(' ')
		b.WriteString(item.MeasurementUnit)
		b.WriteByte('\n')
	}
	return b.String()
}
