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

// EpicAdapter reads the Epic Games Store free-games promotion feed
type EpicAdapter struct {
	client  *resty.Client
	baseURL string
}

type epicResponse struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []epicElement `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
}

type epicElement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ProductSlug string `json:"productSlug"`
	CatalogNs   struct {
		Mappings []struct {
			PageSlug string `json:"pageSlug"`
			PageType string `json:"pageType"`
		} `json:"mappings"`
	} `json:"catalogNs"`
	KeyImages []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"keyImages"`
	Price struct {
		TotalPrice struct {
			DiscountPrice int    `json:"discountPrice"`
			OriginalPrice int    `json:"originalPrice"`
			CurrencyCode  string `json:"currencyCode"`
		} `json:"totalPrice"`
	} `json:"price"`
	Promotions struct {
		PromotionalOffers []struct {
			PromotionalOffers []epicOffer `json:"promotionalOffers"`
		} `json:"promotionalOffers"`
	} `json:"promotions"`
}

type epicOffer struct {
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	DiscountSetting struct {
		DiscountType       string `json:"discountType"`
		DiscountPercentage int    `json:"discountPercentage"`
	} `json:"discountSetting"`
}

// NewEpicAdapter creates the Epic Games Store adapter
func NewEpicAdapter() *EpicAdapter {
	return &EpicAdapter{
		client: resty.New().
			SetTimeout(20*time.Second).
			SetHeader("User-Agent", "FreeGamePing/1.0"),
		baseURL: "https://store-site-backend-static.ak.epicgames.com",
	}
}

func (a *EpicAdapter) Storefront() models.Storefront {
	return models.StorefrontEpic
}

func (a *EpicAdapter) Fetch(ctx context.Context) ([]models.Promotion, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("locale", "en-US").
		Get(a.baseURL + "/freeGamesPromotions")

	if err != nil {
		return nil, fmt.Errorf("epic request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("epic API returned status %d", resp.StatusCode())
	}

	var payload epicResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("epic response decode failed: %w", err)
	}

	now := time.Now()
	var promotions []models.Promotion

	for _, el := range payload.Data.Catalog.SearchStore.Elements {
		offer, ok := activeEpicOffer(el, now)
		if !ok {
			continue
		}

		if el.ID == "" || el.Title == "" {
			logrus.Debugf("Skipping malformed epic element %q", el.Title)
			continue
		}

		slug := el.ProductSlug
		for _, m := range el.CatalogNs.Mappings {
			if m.PageType == "productHome" && m.PageSlug != "" {
				slug = m.PageSlug
				break
			}
		}
		if slug == "" {
			logrus.Debugf("Skipping epic element %q without store page", el.Title)
			continue
		}

		promo := models.Promotion{
			Storefront:  models.StorefrontEpic,
			NativeID:    el.ID,
			Title:       el.Title,
			Description: el.Description,
			URL:         "https://store.epicgames.com/p/" + slug,
			StartsAt:    offer.StartDate,
			EndsAt:      offer.EndDate,
		}

		for _, img := range el.KeyImages {
			if img.Type == "OfferImageWide" || img.Type == "Thumbnail" {
				promo.ImageURL = img.URL
				break
			}
		}

		if el.Price.TotalPrice.OriginalPrice > 0 {
			promo.Price = &models.PriceInfo{
				Amount:   el.Price.TotalPrice.OriginalPrice,
				Currency: el.Price.TotalPrice.CurrencyCode,
			}
		}

		promotions = append(promotions, promo)
	}

	return promotions, nil
}

// activeEpicOffer returns the promotional offer that makes el free right
// now: a running offer with discount percentage 0 (Epic encodes "100% off"
// as a remaining price percentage of 0) and a discounted total of 0.
func activeEpicOffer(el epicElement, now time.Time) (epicOffer, bool) {
	if el.Price.TotalPrice.DiscountPrice != 0 {
		return epicOffer{}, false
	}

	for _, group := range el.Promotions.PromotionalOffers {
		for _, offer := range group.PromotionalOffers {
			if offer.DiscountSetting.DiscountPercentage != 0 {
				continue
			}
			if now.Before(offer.StartDate) || now.After(offer.EndDate) {
				continue
			}
			return offer, true
		}
	}

	return epicOffer{}, false
}
