// Package routing resolves which Discord channel or thread an announcement
// for a given storefront should be posted to.
package routing

import "github.com/MATrsx/freegameping/internal/models"

// Route returns the destination for announcements about sf in this guild.
// Resolution order, first match wins:
//
//  1. the guild's per-storefront thread, when split threading is enabled
//     and a thread is configured for sf
//  2. the guild's shared thread
//  3. the guild's primary channel
//
// ChannelID is mandatory on every configuration, so a promotion is never
// dropped for lack of a destination.
func Route(cfg models.GuildConfig, sf models.Storefront) string {
	if cfg.SplitThreads {
		if threadID, ok := cfg.StoreThreads[sf]; ok && threadID != "" {
			return threadID
		}
	}

	if cfg.ThreadID != "" {
		return cfg.ThreadID
	}

	return cfg.ChannelID
}
