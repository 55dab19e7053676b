package storefronts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// GOGAdapter reads the GOG catalog filtered to discounted zero-price games
type GOGAdapter struct {
	client  *resty.Client
	baseURL string
}

type gogResponse struct {
	Products []gogProduct `json:"products"`
}

type gogProduct struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	StoreLink       string `json:"storeLink"`
	CoverHorizontal string `json:"coverHorizontal"`
	Price           struct {
		Discount   string   `json:"discount"` // e.g. "-100%"
		BaseMoney  gogMoney `json:"baseMoney"`
		FinalMoney gogMoney `json:"finalMoney"`
	} `json:"price"`
	ReviewsRating int `json:"reviewsRating"` // 0..50, tens of stars
}

type gogMoney struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// NewGOGAdapter creates the GOG storefront adapter
func NewGOGAdapter() *GOGAdapter {
	return &GOGAdapter{
		client: resty.New().
			SetTimeout(20*time.Second).
			SetHeader("User-Agent", "FreeGamePing/1.0"),
		baseURL: "https://catalog.gog.com",
	}
}

func (a *GOGAdapter) Storefront() models.Storefront {
	return models.StorefrontGOG
}

func (a *GOGAdapter) Fetch(ctx context.Context) ([]models.Promotion, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"limit":        "48",
			"order":        "desc:trending",
			"discounted":   "eq:true",
			"price":        "between:0,0",
			"productType":  "in:game,pack",
			"countryCode":  "US",
			"currencyCode": "USD",
		}).
		Get(a.baseURL + "/v1/catalog")

	if err != nil {
		return nil, fmt.Errorf("gog request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gog API returned status %d", resp.StatusCode())
	}

	var payload gogResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("gog response decode failed: %w", err)
	}

	var promotions []models.Promotion

	for _, product := range payload.Products {
		// Giveaways are full discounts; the zero price filter alone also
		// matches permanently-free titles on sale pages.
		if product.Price.Discount != "-100%" {
			continue
		}

		if product.ID == "" || product.Title == "" || product.StoreLink == "" {
			logrus.Debugf("Skipping malformed gog product %q", product.Title)
			continue
		}

		promo := models.Promotion{
			Storefront: models.StorefrontGOG,
			NativeID:   product.ID,
			Title:      product.Title,
			URL:        product.StoreLink,
			ImageURL:   product.CoverHorizontal,
		}

		if cents, ok := parseMoney(product.Price.BaseMoney.Amount); ok && cents > 0 {
			promo.Price = &models.PriceInfo{Amount: cents, Currency: product.Price.BaseMoney.Currency}
		}

		if product.ReviewsRating > 0 {
			promo.Rating = &models.RatingInfo{Score: float64(product.ReviewsRating) * 2}
		}

		promotions = append(promotions, promo)
	}

	return promotions, nil
}

// parseMoney converts a decimal amount string like "29.99" to minor units.
func parseMoney(amount string) (int, bool) {
	var units, cents int
	n, err := fmt.Sscanf(amount, "%d.%02d", &units, &cents)
	if err != nil || n != 2 {
		if _, err := fmt.Sscanf(amount, "%d", &units); err != nil {
			return 0, false
		}
		return units * 100, true
	}
	return units*100 + cents, true
}
