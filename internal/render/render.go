// Package render turns promotions and scan results into localized Discord
// messages.
package render

import (
	"fmt"
	"strings"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/models"
)

const descriptionLimit = 300

// Per-storefront embed accent colors
var storefrontColors = map[models.Storefront]int{
	models.StorefrontEpic:  0x2F2F2F,
	models.StorefrontSteam: 0x1B2838,
	models.StorefrontGOG:   0x86328A,
	models.StorefrontItch:  0xFA5C5C,
}

var storefrontNames = map[models.Storefront]string{
	models.StorefrontEpic:  "Epic Games Store",
	models.StorefrontSteam: "Steam",
	models.StorefrontGOG:   "GOG",
	models.StorefrontItch:  "itch.io",
}

// StorefrontName returns the display name for a storefront id.
func StorefrontName(sf models.Storefront) string {
	if name, ok := storefrontNames[sf]; ok {
		return name
	}
	return string(sf)
}

// Announcement renders one promotion as a single-embed message.
func Announcement(p models.Promotion, loc models.Locale) discord.Message {
	description := Tf(loc, "headline", StorefrontName(p.Storefront))
	if d := truncate(p.Description, descriptionLimit); d != "" {
		description += "\n\n" + d
	}

	embed := discord.Embed{
		Title:       p.Title,
		URL:         p.URL,
		Description: description,
		Color:       storefrontColors[p.Storefront],
	}

	if p.ImageURL != "" {
		embed.Image = &discord.EmbedImage{URL: p.ImageURL}
	}

	if !p.EndsAt.IsZero() {
		// Discord renders <t:unix:f> in the reader's own timezone
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   T(loc, "free_until"),
			Value:  fmt.Sprintf("<t:%d:f>", p.EndsAt.Unix()),
			Inline: true,
		})
	}

	if p.Price != nil && p.Price.Amount > 0 {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   T(loc, "original_price"),
			Value:  formatPrice(*p.Price),
			Inline: true,
		})
	}

	footer := StorefrontName(p.Storefront)
	if p.Rating != nil {
		footer += fmt.Sprintf(" | %s %.0f/100", T(loc, "rating"), p.Rating.Score)
		if p.Rating.Count > 0 {
			footer += fmt.Sprintf(" (%d)", p.Rating.Count)
		}
	}
	embed.Footer = &discord.EmbedFooter{Text: footer}

	return discord.Message{Embeds: []discord.Embed{embed}}
}

// MentionPreamble renders the role pings prepended to every announcement,
// in configured order. Empty when no roles are configured.
func MentionPreamble(roleIDs []string) string {
	if len(roleIDs) == 0 {
		return ""
	}

	tokens := make([]string, len(roleIDs))
	for i, id := range roleIDs {
		tokens[i] = "<@&" + id + ">"
	}
	return strings.Join(tokens, " ")
}

// ScanSummary renders the follow-up text for a manually triggered scan.
func ScanSummary(rep *models.ScanReport, loc models.Locale) string {
	var summary string
	if rep.Announced == 0 {
		summary = T(loc, "scan_none")
	} else {
		summary = Tf(loc, "scan_done", rep.Announced)
	}

	if rep.DeliveryFails > 0 {
		summary += " " + Tf(loc, "scan_fails", rep.DeliveryFails)
	}

	return summary
}

func formatPrice(p models.PriceInfo) string {
	return fmt.Sprintf("%.2f %s", float64(p.Amount)/100, p.Currency)
}

// truncate shortens s to at most limit runes on a rune boundary.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
