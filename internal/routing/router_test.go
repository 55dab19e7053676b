package routing

import (
	"testing"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRoute_Precedence(t *testing.T) {
	tests := []struct {
		name       string
		cfg        models.GuildConfig
		storefront models.Storefront
		expected   string
	}{
		{
			name: "per-storefront thread wins over shared thread and channel",
			cfg: models.GuildConfig{
				ChannelID:    "channel",
				ThreadID:     "shared-thread",
				SplitThreads: true,
				StoreThreads: map[models.Storefront]string{models.StorefrontEpic: "epic-thread"},
			},
			storefront: models.StorefrontEpic,
			expected:   "epic-thread",
		},
		{
			name: "unconfigured storefront falls back to shared thread",
			cfg: models.GuildConfig{
				ChannelID:    "channel",
				ThreadID:     "shared-thread",
				SplitThreads: true,
				StoreThreads: map[models.Storefront]string{models.StorefrontEpic: "epic-thread"},
			},
			storefront: models.StorefrontSteam,
			expected:   "shared-thread",
		},
		{
			name: "split threading disabled ignores store threads",
			cfg: models.GuildConfig{
				ChannelID:    "channel",
				SplitThreads: false,
				StoreThreads: map[models.Storefront]string{models.StorefrontEpic: "epic-thread"},
			},
			storefront: models.StorefrontEpic,
			expected:   "channel",
		},
		{
			name: "empty per-storefront entry falls through",
			cfg: models.GuildConfig{
				ChannelID:    "channel",
				SplitThreads: true,
				StoreThreads: map[models.Storefront]string{models.StorefrontGOG: ""},
			},
			storefront: models.StorefrontGOG,
			expected:   "channel",
		},
		{
			name: "shared thread without split threading",
			cfg: models.GuildConfig{
				ChannelID: "channel",
				ThreadID:  "shared-thread",
			},
			storefront: models.StorefrontItch,
			expected:   "shared-thread",
		},
		{
			name:       "only primary channel set",
			cfg:        models.GuildConfig{ChannelID: "channel"},
			storefront: models.StorefrontSteam,
			expected:   "channel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Route(tt.cfg, tt.storefront))
		})
	}
}

func TestRoute_IsPure(t *testing.T) {
	cfg := models.GuildConfig{
		ChannelID:    "channel",
		ThreadID:     "shared",
		SplitThreads: true,
		StoreThreads: map[models.Storefront]string{models.StorefrontEpic: "epic-thread"},
	}

	first := Route(cfg, models.StorefrontEpic)
	second := Route(cfg, models.StorefrontEpic)
	assert.Equal(t, first, second)
}

func TestRoute_PrimaryChannelCoversAllStorefronts(t *testing.T) {
	cfg := models.GuildConfig{ChannelID: "channel"}
	for _, sf := range models.AllStorefronts {
		assert.Equal(t, "channel", Route(cfg, sf))
	}
}
