package storefronts

import (
	"context"

	"github.com/MATrsx/freegameping/internal/models"
)

// Adapter fetches one storefront's current free-promotion listing.
// Implementations own their HTTP details, apply their own timeouts, and
// never panic past this boundary; the scan treats an error as "no data".
type Adapter interface {
	Storefront() models.Storefront
	Fetch(ctx context.Context) ([]models.Promotion, error)
}

// All returns one adapter per supported storefront, keyed by id.
// Resolved once at startup; the scan orchestrator dispatches through it.
func All() map[models.Storefront]Adapter {
	adapters := []Adapter{
		NewEpicAdapter(),
		NewSteamAdapter(),
		NewGOGAdapter(),
		NewItchAdapter(),
	}

	byID := make(map[models.Storefront]Adapter, len(adapters))
	for _, a := range adapters {
		byID[a.Storefront()] = a
	}
	return byID
}
