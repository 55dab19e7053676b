package storefronts

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// ItchAdapter scrapes the itch.io on-sale grid for 100% discounts.
// itch has no public JSON catalog for sales, so this parses the HTML.
type ItchAdapter struct {
	client  *resty.Client
	baseURL string
}

// NewItchAdapter creates the itch.io storefront adapter
func NewItchAdapter() *ItchAdapter {
	return &ItchAdapter{
		client: resty.New().
			SetTimeout(20*time.Second).
			SetHeader("User-Agent", "FreeGamePing/1.0"),
		baseURL: "https://itch.io",
	}
}

func (a *ItchAdapter) Storefront() models.Storefront {
	return models.StorefrontItch
}

func (a *ItchAdapter) Fetch(ctx context.Context) ([]models.Promotion, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		Get(a.baseURL + "/games/on-sale")

	if err != nil {
		return nil, fmt.Errorf("itch request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("itch returned status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("itch page parse failed: %w", err)
	}

	var promotions []models.Promotion

	doc.Find("div.game_cell").Each(func(_ int, cell *goquery.Selection) {
		saleTag := strings.TrimSpace(cell.Find(".sale_tag").First().Text())
		if saleTag != "-100%" {
			return
		}

		gameID, ok := cell.Attr("data-game_id")
		if !ok || gameID == "" {
			logrus.Debug("Skipping itch cell without game id")
			return
		}

		titleLink := cell.Find("a.title").First()
		title := strings.TrimSpace(titleLink.Text())
		href, _ := titleLink.Attr("href")
		if title == "" || href == "" {
			logrus.Debugf("Skipping malformed itch cell %s", gameID)
			return
		}

		promo := models.Promotion{
			Storefront:  models.StorefrontItch,
			NativeID:    gameID,
			Title:       title,
			Description: strings.TrimSpace(cell.Find(".game_text").First().Text()),
			URL:         href,
			// The on-sale grid does not expose the sale window
		}

		if img := cell.Find(".game_thumb img").First(); img.Length() > 0 {
			if src, ok := img.Attr("data-lazy_src"); ok && src != "" {
				promo.ImageURL = src
			} else if src, ok := img.Attr("src"); ok {
				promo.ImageURL = src
			}
		}

		promotions = append(promotions, promo)
	})

	return promotions, nil
}
