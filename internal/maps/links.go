package maps

import "net/url"

const (
	searchBaseURL     = "https://www.google.com/maps/search/"
	directionsBaseURL = "https://www.google.com/maps/dir/"
)

// SearchLink returns a maps search URL for query, pinned to placeID when known.
func SearchLink(query, placeID string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", query)
	if placeID != "" {
		q.Set("query_place_id", placeID)
	}
	return searchBaseURL + "?" + q.Encode()
}

// TransitDirectionsLink returns a public-transport directions URL from origin to destination.
func TransitDirectionsLink(origin, destination string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("travelmode", "transit")
	return directionsBaseURL + "?" + q.Encode()
}
