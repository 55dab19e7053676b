package storefronts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// SteamAdapter reads the Steam featured-categories specials listing
type SteamAdapter struct {
	client  *resty.Client
	baseURL string
}

type steamResponse struct {
	Specials struct {
		Items []steamItem `json:"items"`
	} `json:"specials"`
}

type steamItem struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	DiscountPercent    int    `json:"discount_percent"`
	OriginalPrice      int    `json:"original_price"`
	FinalPrice         int    `json:"final_price"`
	Currency           string `json:"currency"`
	DiscountExpiration int64  `json:"discount_expiration"`
	HeaderImage        string `json:"header_image"`
}

// NewSteamAdapter creates the Steam storefront adapter
func NewSteamAdapter() *SteamAdapter {
	return &SteamAdapter{
		client: resty.New().
			SetTimeout(20*time.Second).
			SetHeader("User-Agent", "FreeGamePing/1.0"),
		baseURL: "https://store.steampowered.com",
	}
}

func (a *SteamAdapter) Storefront() models.Storefront {
	return models.StorefrontSteam
}

func (a *SteamAdapter) Fetch(ctx context.Context) ([]models.Promotion, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("cc", "US").
		SetQueryParam("l", "english").
		Get(a.baseURL + "/api/featuredcategories")

	if err != nil {
		return nil, fmt.Errorf("steam request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("steam API returned status %d", resp.StatusCode())
	}

	var payload steamResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("steam response decode failed: %w", err)
	}

	var promotions []models.Promotion

	for _, item := range payload.Specials.Items {
		// A temporarily-free game is a 100% discount with nothing left
		// to pay; free-to-play titles never appear in specials.
		if item.DiscountPercent != 100 || item.FinalPrice != 0 {
			continue
		}

		if item.ID == 0 || item.Name == "" {
			logrus.Debugf("Skipping malformed steam special %q", item.Name)
			continue
		}

		appID := strconv.Itoa(item.ID)
		promo := models.Promotion{
			Storefront: models.StorefrontSteam,
			NativeID:   appID,
			Title:      item.Name,
			URL:        "https://store.steampowered.com/app/" + appID,
			ImageURL:   item.HeaderImage,
		}

		if item.DiscountExpiration > 0 {
			promo.EndsAt = time.Unix(item.DiscountExpiration, 0).UTC()
		}

		if item.OriginalPrice > 0 {
			currency := item.Currency
			if currency == "" {
				currency = "USD"
			}
			promo.Price = &models.PriceInfo{Amount: item.OriginalPrice, Currency: currency}
		}

		promotions = append(promotions, promo)
	}

	return promotions, nil
}
