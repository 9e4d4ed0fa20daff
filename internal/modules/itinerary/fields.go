package itinerary

import (
	"strings"
)

// Field is one recognised key of an item's "Key: Value" lines.
type Field string

const (
	FieldActivity        Field = "Activity"
	FieldRestaurant      Field = "Restaurant"
	FieldDescription     Field = "Description"
	FieldRecommendedTime Field = "Recommended Time"
	FieldDuration        Field = "Duration"
	FieldCost            Field = "Cost"
	FieldTravelTime      Field = "Travel Time"
	FieldTravelCost      Field = "Travel Cost"
	FieldRating          Field = "Rating"
	FieldCategory        Field = "Category"
	FieldMustTry         Field = "Must-Try"
)

var knownFields = map[string]Field{
	"activity":         FieldActivity,
	"restaurant":       FieldRestaurant,
	"description":      FieldDescription,
	"recommended time": FieldRecommendedTime,
	"duration":         FieldDuration,
	"cost":             FieldCost,
	"travel time":      FieldTravelTime,
	"travel cost":      FieldTravelCost,
	"rating":           FieldRating,
	"category":         FieldCategory,
	"must-try":         FieldMustTry,
	"must-try dishes":  FieldMustTry,
}

// Fields is the key/value record of one item. Missing keys stay absent.
type Fields struct {
	values map[Field]string
	// Unrecognized holds every other key, as written.
	Unrecognized map[string]string
	// FirstLine is the first line without a colon, kept as a naming fallback.
	FirstLine string
}

// Get returns the value of f, or "" when absent.
func (f Fields) Get(k Field) string {
	return f.values[k]
}

func (f Fields) Has(k Field) bool {
	_, ok := f.values[k]
	return ok
}

// ExtractFields splits an item into lines and records each "Key: Value" line.
// The first colon separates key and value; later duplicates win.
func ExtractFields(item string) Fields {
	f := Fields{
		values:       map[Field]string{},
		Unrecognized: map[string]string{},
	}

	for _, line := range strings.Split(item, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			if f.FirstLine == "" {
				f.FirstLine = line
			}
			continue
		}
		key = normalizeKey(key)
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), "*"))
		if key == "" {
			continue
		}
		if known, ok := knownFields[strings.ToLower(key)]; ok {
			f.values[known] = value
			continue
		}
		f.Unrecognized[key] = value
	}
	return f
}

func normalizeKey(key string) string {
	key = strings.ReplaceAll(key, "**", "")
	key = strings.TrimSpace(key)
	key = strings.TrimLeft(key, "-*• ")
	return strings.TrimSpace(key)
}
