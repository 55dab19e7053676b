package interactions

import "github.com/MATrsx/freegameping/internal/discord"

// Interaction types and response types, per the Discord interaction API
const (
	interactionTypePing    = 1
	interactionTypeCommand = 2

	responseTypePong            = 1
	responseTypeChannelMessage  = 4
	responseTypeDeferredMessage = 5
)

// Interaction is the subset of the interaction payload the bot reads.
type Interaction struct {
	ID            string          `json:"id"`
	ApplicationID string          `json:"application_id"`
	Type          int             `json:"type"`
	Token         string          `json:"token"`
	GuildID       string          `json:"guild_id"`
	Locale        string          `json:"locale"`
	Data          InteractionData `json:"data"`
}

type InteractionData struct {
	Name    string              `json:"name"`
	Options []InteractionOption `json:"options"`
}

type InteractionOption struct {
	Name    string              `json:"name"`
	Type    int                 `json:"type"`
	Value   any                 `json:"value"`
	Options []InteractionOption `json:"options"`
}

// InteractionResponse is the immediate reply to an interaction.
type InteractionResponse struct {
	Type int              `json:"type"`
	Data *discord.Message `json:"data,omitempty"`
}

// subcommand returns the invoked subcommand and its arguments.
func (d InteractionData) subcommand() (string, []InteractionOption) {
	if len(d.Options) == 1 && d.Options[0].Type == discord.OptionTypeSubCommand {
		return d.Options[0].Name, d.Options[0].Options
	}
	return "", nil
}

func optString(opts []InteractionOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			if s, ok := opt.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func optBool(opts []InteractionOption, name string) bool {
	for _, opt := range opts {
		if opt.Name == name {
			if b, ok := opt.Value.(bool); ok {
				return b
			}
		}
	}
	return false
}
