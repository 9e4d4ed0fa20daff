package itinerary

// DayBlock is the text between one "Day N:" header and the next.
type DayBlock struct {
	// Index is the 0-based day number (header number minus one).
	Index int
	Raw   string
	Items []string
}

// SegmentDays splits a model response into day blocks in textual order.
// Headers with a non-positive day number are dropped; repeated numbers are kept.
func SegmentDays(text string) []DayBlock {
	headers := dayHeaders(text)
	blocks := make([]DayBlock, 0, len(headers))
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1].start
		}
		if h.number < 1 {
			continue
		}
		raw := text[h.start:end]
		blocks = append(blocks, DayBlock{
			Index: h.number - 1,
			Raw:   raw,
			Items: splitBullets(raw),
		})
	}
	return blocks
}
