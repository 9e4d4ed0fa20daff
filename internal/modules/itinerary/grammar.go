// README: Named extraction functions for the model response quasi-grammar.
// Currency patterns (LOCAL_CURRENCY line, cost amounts) live in the currency module.
package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Day N:
	dayHeaderPattern = regexp.MustCompile(`Day (\d+):`)
	// A top-level bullet. Indented "  - Key: value" lines stay inside their item.
	bulletPattern = regexp.MustCompile(`(?m)^- `)
	// SELECTED_HOTEL: NAME | PRICE | DISTANCE | RATING
	selectedHotelPattern = regexp.MustCompile(`SELECTED_HOTEL:\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*([^|]+)\s*\|\s*([^|\n]+)`)
	hotelPricePattern    = regexp.MustCompile(`[€$£¥](\d+)`)
	ratingDecimalPattern = regexp.MustCompile(`\d+\.\d+`)
	// HOTEL: name, the answer line of the hotel recommendation prompt.
	hotelLinePattern = regexp.MustCompile(`HOTEL:\s*(.+)`)
)

type dayHeader struct {
	number int
	start  int // offset of "Day"
	end    int // offset just past the colon
}

// dayHeaders returns every "Day N:" occurrence in textual order.
func dayHeaders(text string) []dayHeader {
	locs := dayHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]dayHeader, 0, len(locs))
	for _, loc := range locs {
		n, err := strconv.Atoi(text[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		out = append(out, dayHeader{number: n, start: loc[0], end: loc[1]})
	}
	return out
}

// splitBullets drops the header line of a day block and splits the rest into
// trimmed, non-empty bullet items.
func splitBullets(block string) []string {
	if loc := dayHeaderPattern.FindStringIndex(block); loc != nil && loc[0] == 0 {
		if nl := strings.IndexByte(block, '\n'); nl >= 0 {
			block = block[nl+1:]
		} else {
			block = ""
		}
	}

	var items []string
	for _, part := range bulletPattern.Split(block, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

// SelectedHotel is the hotel the model picked when asked to search for one.
type SelectedHotel struct {
	Name          string
	PricePerNight int
	Distance      string
	Rating        string
}

func matchSelectedHotel(text string) (SelectedHotel, bool) {
	m := selectedHotelPattern.FindStringSubmatch(text)
	if m == nil {
		return SelectedHotel{}, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return SelectedHotel{}, false
	}
	return SelectedHotel{
		Name:          name,
		PricePerNight: matchHotelPrice(m[2]),
		Distance:      strings.TrimSpace(m[3]),
		Rating:        strings.TrimSpace(m[4]),
	}, true
}

// matchHotelPrice returns the integer following the first currency symbol, or 0.
func matchHotelPrice(s string) int {
	m := hotelPricePattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// matchRatingDecimal returns the first decimal number in s ("4.5 stars" -> "4.5").
func matchRatingDecimal(s string) string {
	return ratingDecimalPattern.FindString(s)
}

// ExtractHotelName reads the "HOTEL: name" answer of a hotel recommendation.
func ExtractHotelName(text string) (string, bool) {
	m := hotelLinePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := strings.Trim(strings.TrimSpace(m[1]), "*\"")
	return name, name != ""
}
