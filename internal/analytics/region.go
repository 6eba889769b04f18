package analytics

import "encoding/json"

const UnknownRegion = "Unknown"

// parseCity extracts the city from a JSON shipping address. Any failure
// (nil address, bad JSON, missing or non-string city) reports ok=false.
func parseCity(address *string) (string, bool) {
	if address == nil {
		return "", false
	}
	var addr struct {
		City any `json:"city"`
	}
	if err := json.Unmarshal([]byte(*address), &addr); err != nil {
		return "", false
	}
	city, ok := addr.City.(string)
	if !ok || city == "" {
		return "", false
	}
	return city, true
}

func regionOf(address *string) string {
	if city, ok := parseCity(address); ok {
		return city
	}
	return UnknownRegion
}
