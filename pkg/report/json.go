package report

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"
)

// MarshalSummary renders the run summary as indented JSON.
//
// The category sequence in the JSON output matches execution order exactly,
// which is why this uses an order-preserving map instead of a plain
// map[string]any: consumers diffing two runs should see categories in the
// same stable positions.
//
// Parameters:
//   - summary: The completed run summary
//
// Returns:
//   - string: Indented JSON document
//   - error: When marshaling fails; returns nil on success
func MarshalSummary(summary *RunSummary) (string, error) {
	doc := orderedmap.New()
	doc.SetEscapeHTML(false)

	categories := make([]*orderedmap.OrderedMap, 0, len(summary.Results))
	for _, result := range summary.Results {
		categories = append(categories, marshalResult(result))
	}

	doc.Set("total_items", summary.TotalItems())
	doc.Set("changed_categories", summary.ChangedCategories())
	doc.Set("elapsed", summary.Elapsed.Round(timeRound).String())
	doc.Set("categories", categories)
	doc.Set("issues", summary.Issues)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal summary: %w", err)
	}
	return string(data), nil
}

// marshalResult converts one category result to an ordered JSON object.
//
// Parameters:
//   - result: The category result to convert
//
// Returns:
//   - *orderedmap.OrderedMap: Object with name, title, status, detail, items
func marshalResult(result CategoryResult) *orderedmap.OrderedMap {
	obj := orderedmap.New()
	obj.SetEscapeHTML(false)

	obj.Set("name", result.Category)
	obj.Set("title", result.Title)
	obj.Set("status", result.Status)
	if result.Detail != "" {
		obj.Set("detail", result.Detail)
	}

	items := make([]*orderedmap.OrderedMap, 0, len(result.Records))
	for _, rec := range result.Records {
		item := orderedmap.New()
		item.SetEscapeHTML(false)
		item.Set("name", rec.Name)
		if rec.OldVersion != "" {
			item.Set("old_version", rec.OldVersion)
		}
		if rec.NewVersion != "" {
			item.Set("new_version", rec.NewVersion)
		}
		items = append(items, item)
	}
	obj.Set("items", items)

	return obj
}
