package interactions

import (
	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/render"
)

// manageGuildPermission restricts /setup to members with Manage Server.
const manageGuildPermission = "32"

func storefrontChoices() []discord.CommandChoice {
	choices := make([]discord.CommandChoice, len(models.AllStorefronts))
	for i, sf := range models.AllStorefronts {
		choices[i] = discord.CommandChoice{Name: render.StorefrontName(sf), Value: string(sf)}
	}
	return choices
}

func localeChoices() []discord.CommandChoice {
	choices := make([]discord.CommandChoice, len(models.AllLocales))
	for i, loc := range models.AllLocales {
		choices[i] = discord.CommandChoice{Name: string(loc), Value: string(loc)}
	}
	return choices
}

var actionChoices = []discord.CommandChoice{
	{Name: "add", Value: "add"},
	{Name: "remove", Value: "remove"},
}

// Definitions returns the application's slash commands; the registration
// tool overwrites the global command set with these.
func Definitions() []discord.Command {
	adminOnly := manageGuildPermission
	noDM := false

	return []discord.Command{
		{
			Name:         "freegames",
			Description:  "Free game announcements",
			DMPermission: &noDM,
			Options: []discord.CommandOption{
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "check",
					Description: "Check the storefronts for new free games now",
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "status",
					Description: "Show this server's announcement settings",
				},
			},
		},
		{
			Name:                     "setup",
			Description:              "Configure free game announcements",
			DefaultMemberPermissions: &adminOnly,
			DMPermission:             &noDM,
			Options: []discord.CommandOption{
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "channel",
					Description: "Set the channel announcements are posted in",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeChannel, Name: "channel", Description: "Announcement channel", Required: true},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "thread",
					Description: "Post announcements in a shared thread (omit to clear)",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeChannel, Name: "thread", Description: "Announcement thread"},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "splitthreads",
					Description: "Toggle one thread per storefront",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeBoolean, Name: "enabled", Description: "Enable per-storefront threads", Required: true},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "storethread",
					Description: "Set the thread for one storefront",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeString, Name: "storefront", Description: "Storefront", Required: true, Choices: storefrontChoices()},
						{Type: discord.OptionTypeChannel, Name: "thread", Description: "Thread for this storefront", Required: true},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "storefronts",
					Description: "Add or remove a watched storefront",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeString, Name: "action", Description: "add or remove", Required: true, Choices: actionChoices},
						{Type: discord.OptionTypeString, Name: "storefront", Description: "Storefront", Required: true, Choices: storefrontChoices()},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "mention",
					Description: "Add or remove a role pinged on announcements",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeString, Name: "action", Description: "add or remove", Required: true, Choices: actionChoices},
						{Type: discord.OptionTypeRole, Name: "role", Description: "Role to mention", Required: true},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "language",
					Description: "Set the announcement language",
					Options: []discord.CommandOption{
						{Type: discord.OptionTypeString, Name: "locale", Description: "Language", Required: true, Choices: localeChoices()},
					},
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "pause",
					Description: "Pause announcements for this server",
				},
				{
					Type:        discord.OptionTypeSubCommand,
					Name:        "resume",
					Description: "Resume announcements for this server",
				},
			},
		},
	}
}
