// Package importer loads the tag and ingredient reference data from CSV
// files. It only runs against empty collections; re-imports require wiping
// the catalog first.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"foodgram/db"
	"foodgram/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotEmpty = errors.New("collection is not empty")

// parseIngredients reads rows of a header-mapped CSV with name and
// measurement_unit columns. Names are capitalized the way the catalog
// stores them.
func parseIngredients(r io.Reader) ([]models.Ingredient, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	ingredients := make([]models.Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, models.Ingredient{
			Name:            capitalize(row["name"]),
			MeasurementUnit: row["measurement_unit"],
		})
	}
	return ingredients, nil
}

func parseTags(r io.Reader) ([]models.Tag, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	tags := make([]models.Tag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, models.Tag{
			Name:  row["name"],
			Color: row["color"],
			Slug:  row["slug"],
		})
	}
	return tags, nil
}

func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, err
	}
	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) != len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, field := range headers {
			row[strings.ToLower(strings.TrimSpace(field))] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func importInto(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%s: %w", coll.Name(), ErrNotEmpty)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err = coll.InsertMany(ctx, docs)
	return err
}

// Run imports ingredients.csv and tags.csv from dir.
func Run(ctx context.Context, dir string) error {
	log.Println("Импорт данных запущен")

	ingFile, err := os.Open(dir + "/ingredients.csv")
	if err != nil {
		return err
	}
	defer ingFile.Close()
	ingredients, err := parseIngredients(ingFile)
	if err != nil {
		return err
	}
	ingDocs := make([]interface{}, 0, len(ingredients))
	for _, ing := range ingredients {
		ingDocs = append(ingDocs, ing)
	}
	if err := importInto(ctx, db.IngredientCollection, ingDocs); err != nil {
		return err
	}
	log.Printf("Импортировано ингредиентов: %d", len(ingredients))

	tagFile, err := os.Open(dir + "/tags.csv")
	if err != nil {
		return err
	}
	defer tagFile.Close()
	tags, err := parseTags(tagFile)
	if err != nil {
		return err
	}
	tagDocs := make([]interface{}, 0, len(tags))
	for _, tag := range tags {
		tagDocs = append(tagDocs, tag)
	}
	if err := importInto(ctx, db.TagCollection, tagDocs); err != nil {
		return err
	}
	log.Printf("Импортировано тегов: %d", len(tags))

	log.Println("Импорт данных завершен")
	return nil
}
