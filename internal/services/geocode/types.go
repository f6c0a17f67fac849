package geocode

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrAddressNotFound is returned when the search yields no result with address details
var ErrAddressNotFound = errors.New("address not found")

// SearchResult represents one entry of the Nominatim search response
type SearchResult struct {
	PlaceID     int64         `json:"place_id"`
	DisplayName string        `json:"display_name"`
	Lat         string        `json:"lat"`
	Lon         string        `json:"lon"`
	Address     *AddressParts `json:"address,omitempty"`
}

// AddressParts is the addressdetails block of a search result
type AddressParts struct {
	Road        string `json:"road,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	State       string `json:"state,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// APIError represents a non-200 answer from Nominatim
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nominatim error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// coordinate parses a Nominatim coordinate string, 0 when unparseable
func coordinate(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
