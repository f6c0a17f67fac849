package interfaces

import (
	"context"

	"github.com/ternarybob/vatscope/internal/models"
)

// RegistryProvider reads the public company registry (KBO/BCE)
type RegistryProvider interface {
	// FetchGeneralInformation returns identity, address and activity codes of a company
	FetchGeneralInformation(ctx context.Context, vatNumber string) (*models.Company, error)

	// FetchEstablishmentUnits returns the establishment units registered for a company
	FetchEstablishmentUnits(ctx context.Context, vatNumber string) ([]models.EstablishmentUnit, error)
}

// Geocoder resolves the administrative area of a postal address
type Geocoder interface {
	Lookup(ctx context.Context, address string) (*models.GeoLocation, error)
}
