package models

import (
	"fmt"
	"time"
)

// Storefront identifies one of the supported digital storefronts.
type Storefront string

const (
	StorefrontEpic  Storefront = "epic"
	StorefrontSteam Storefront = "steam"
	StorefrontGOG   Storefront = "gog"
	StorefrontItch  Storefront = "itch"
)

// AllStorefronts is the canonical ordering used for display and command registration.
var AllStorefronts = []Storefront{StorefrontEpic, StorefrontSteam, StorefrontGOG, StorefrontItch}

// ParseStorefront maps a lowercase storefront name to its constant.
func ParseStorefront(s string) (Storefront, error) {
	for _, sf := range AllStorefronts {
		if string(sf) == s {
			return sf, nil
		}
	}
	return "", fmt.Errorf("unknown storefront %q", s)
}

// Locale identifies one of the supported announcement languages.
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocaleGerman     Locale = "de"
	LocaleSpanish    Locale = "es"
	LocaleFrench     Locale = "fr"
	LocaleItalian    Locale = "it"
	LocalePolish     Locale = "pl"
	LocalePortuguese Locale = "pt-BR"
	LocaleRussian    Locale = "ru"
)

// AllLocales is the canonical ordering used for display and command registration.
var AllLocales = []Locale{
	LocaleEnglish, LocaleGerman, LocaleSpanish, LocaleFrench,
	LocaleItalian, LocalePolish, LocalePortuguese, LocaleRussian,
}

// ParseLocale maps a locale tag to its constant, falling back to English.
// Discord sends regional tags like "de" or "pt-BR"; anything unknown is "en".
func ParseLocale(s string) Locale {
	for _, loc := range AllLocales {
		if string(loc) == s {
			return loc
		}
	}
	return LocaleEnglish
}

// PriceInfo is the original price a promotion waives.
type PriceInfo struct {
	Amount   int    `json:"amount"` // minor units (cents)
	Currency string `json:"currency"`
}

// RatingInfo is an optional aggregate user rating for a promotion.
type RatingInfo struct {
	Score float64 `json:"score"` // 0..100
	Count int     `json:"count"`
}

// Promotion represents one storefront's time-bounded free-game offer.
// Promotions are constructed fresh on every fetch and never persisted;
// only Identity() enters the dedup ledger.
type Promotion struct {
	Storefront  Storefront  `json:"storefront"`
	NativeID    string      `json:"native_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	ImageURL    string      `json:"image_url,omitempty"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Price       *PriceInfo  `json:"price,omitempty"`
	Rating      *RatingInfo `json:"rating,omitempty"`
}

// Identity returns the globally unique dedup key for this promotion,
// stable across repeated fetches of the same offer.
func (p Promotion) Identity() string {
	return string(p.Storefront) + ":" + p.NativeID
}

// GuildConfig holds one guild's announcement settings. Mutations are
// whole-record read-modify-write, last writer wins; command handlers are
// the only writers.
type GuildConfig struct {
	GuildID      string                `json:"guild_id" validate:"required"`
	Enabled      bool                  `json:"enabled"`
	ChannelID    string                `json:"channel_id" validate:"required"`
	ThreadID     string                `json:"thread_id,omitempty"`
	Storefronts  []Storefront          `json:"storefronts" validate:"min=1,dive,storefront"`
	MentionRoles []string              `json:"mention_roles,omitempty"`
	SplitThreads bool                  `json:"split_threads"`
	StoreThreads map[Storefront]string `json:"store_threads,omitempty"`
	Locale       Locale                `json:"locale" validate:"locale"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// WatchesStorefront reports whether the guild has subscribed to sf.
func (g GuildConfig) WatchesStorefront(sf Storefront) bool {
	for _, watched := range g.Storefronts {
		if watched == sf {
			return true
		}
	}
	return false
}

// NewGuildConfig returns the defaults applied when a guild runs setup for
// the first time: enabled, all storefronts watched, English announcements.
func NewGuildConfig(guildID, channelID string) GuildConfig {
	storefronts := make([]Storefront, len(AllStorefronts))
	copy(storefronts, AllStorefronts)
	return GuildConfig{
		GuildID:     guildID,
		Enabled:     true,
		ChannelID:   channelID,
		Storefronts: storefronts,
		Locale:      LocaleEnglish,
	}
}

// ScanReport summarizes one scan run for metrics and operator follow-ups.
type ScanReport struct {
	RunID         string             `json:"run_id"`
	Trigger       string             `json:"trigger"` // "scheduled" or "manual"
	StartedAt     time.Time          `json:"started_at"`
	Duration      time.Duration      `json:"duration"`
	Announced     int                `json:"announced"`
	PerGuild      map[string]int     `json:"per_guild"`
	PerStorefront map[Storefront]int `json:"per_storefront"`
	DeliveryFails int                `json:"delivery_fails"`
	AdapterErrors int                `json:"adapter_errors"`
	GuildsScanned int                `json:"guilds_scanned"`
}
