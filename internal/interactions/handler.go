// Package interactions is the HTTP front door for Discord interactions:
// Ed25519 request verification, PING handling and the slash commands that
// configure guilds and trigger manual scans.
package interactions

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/guilds"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/render"
	"github.com/MATrsx/freegameping/internal/scan"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/sirupsen/logrus"
)

const maxBodySize = 1 << 20

// followUpTimeout bounds the background scan spawned by /freegames check
// plus its follow-up edit.
const followUpTimeout = 6 * time.Minute

// Scanner runs a manual scan on behalf of a slash command.
type Scanner interface {
	Run(ctx context.Context, trigger string) (*models.ScanReport, error)
}

// Responder edits the deferred response once a manual scan finishes.
type Responder interface {
	EditOriginalResponse(ctx context.Context, appID, token string, msg discord.Message) error
}

// Handler verifies and dispatches Discord interaction callbacks.
type Handler struct {
	publicKey ed25519.PublicKey
	appID     string
	guilds    *guilds.Store
	scans     Scanner
	responder Responder
}

// NewHandler creates the interaction handler. publicKeyHex is the
// application's interaction verification key from the developer portal.
func NewHandler(publicKeyHex, appID string, guildStore *guilds.Store, scans Scanner, responder Responder) (*Handler, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}

	return &Handler{
		publicKey: ed25519.PublicKey(key),
		appID:     appID,
		guilds:    guildStore,
		scans:     scans,
		responder: responder,
	}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if !h.verify(r.Header, body) {
		logrus.Warn("Rejected interaction with bad signature")
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var ia Interaction
	if err := json.Unmarshal(body, &ia); err != nil {
		http.Error(w, "malformed interaction", http.StatusBadRequest)
		return
	}

	var resp InteractionResponse
	switch ia.Type {
	case interactionTypePing:
		resp = InteractionResponse{Type: responseTypePong}
	case interactionTypeCommand:
		resp = h.handleCommand(ia)
	default:
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.Errorf("Failed to write interaction response: %v", err)
	}
}

// verify checks the Ed25519 signature over timestamp+body.
func (h *Handler) verify(header http.Header, body []byte) bool {
	sig, err := hex.DecodeString(header.Get("X-Signature-Ed25519"))
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	timestamp := header.Get("X-Signature-Timestamp")
	if timestamp == "" {
		return false
	}

	return ed25519.Verify(h.publicKey, append([]byte(timestamp), body...), sig)
}

func (h *Handler) handleCommand(ia Interaction) InteractionResponse {
	cfg, err := h.guilds.Get(ia.GuildID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logrus.Errorf("Failed to load guild config %s: %v", ia.GuildID, err)
		return ephemeral(render.T(models.ParseLocale(ia.Locale), "error_generic"))
	}

	loc := models.ParseLocale(ia.Locale)
	if cfg != nil {
		loc = cfg.Locale
	}

	switch ia.Data.Name {
	case "freegames":
		sub, _ := ia.Data.subcommand()
		switch sub {
		case "check":
			return h.handleCheck(ia, loc)
		case "status":
			return h.handleStatus(cfg, loc)
		}
	case "setup":
		sub, opts := ia.Data.subcommand()
		return h.handleSetup(ia, cfg, sub, opts, loc)
	}

	return ephemeral(render.T(loc, "unknown_command"))
}

// handleCheck acknowledges immediately and hands the scan to a background
// task; the deferred response is edited with the outcome when it finishes.
// The follow-up is best effort.
func (h *Handler) handleCheck(ia Interaction, loc models.Locale) InteractionResponse {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), followUpTimeout)
		defer cancel()

		rep, err := h.scans.Run(ctx, "manual")

		var content string
		switch {
		case errors.Is(err, scan.ErrScanInProgress):
			content = render.T(loc, "scan_running")
		case err != nil:
			logrus.Errorf("Manual scan failed: %v", err)
			content = render.T(loc, "scan_failed")
		default:
			content = render.ScanSummary(rep, loc)
		}

		if err := h.responder.EditOriginalResponse(ctx, h.appID, ia.Token, discord.Message{Content: content}); err != nil {
			logrus.Errorf("Failed to send scan follow-up: %v", err)
		}
	}()

	return InteractionResponse{
		Type: responseTypeDeferredMessage,
		Data: &discord.Message{Flags: discord.MessageFlagEphemeral},
	}
}

func (h *Handler) handleStatus(cfg *models.GuildConfig, loc models.Locale) InteractionResponse {
	if cfg == nil {
		return ephemeral(render.T(loc, "not_configured"))
	}

	var b strings.Builder
	if cfg.Enabled {
		b.WriteString(render.T(loc, "status_active"))
	} else {
		b.WriteString(render.T(loc, "status_paused"))
	}

	b.WriteString(fmt.Sprintf("\n%s: <#%s>", render.T(loc, "status_channel"), cfg.ChannelID))

	thread := render.T(loc, "none")
	if cfg.ThreadID != "" {
		thread = "<#" + cfg.ThreadID + ">"
	}
	b.WriteString(fmt.Sprintf("\n%s: %s", render.T(loc, "status_thread"), thread))

	split := render.T(loc, "off")
	if cfg.SplitThreads {
		split = render.T(loc, "on")
	}
	b.WriteString(fmt.Sprintf("\n%s: %s", render.T(loc, "status_split"), split))
	if cfg.SplitThreads {
		for _, sf := range models.AllStorefronts {
			if threadID, ok := cfg.StoreThreads[sf]; ok && threadID != "" {
				b.WriteString(fmt.Sprintf("\n  %s: <#%s>", render.StorefrontName(sf), threadID))
			}
		}
	}

	names := make([]string, len(cfg.Storefronts))
	for i, sf := range cfg.Storefronts {
		names[i] = render.StorefrontName(sf)
	}
	b.WriteString(fmt.Sprintf("\n%s: %s", render.T(loc, "status_storefronts"), strings.Join(names, ", ")))

	mentions := render.T(loc, "none")
	if len(cfg.MentionRoles) > 0 {
		mentions = render.MentionPreamble(cfg.MentionRoles)
	}
	b.WriteString(fmt.Sprintf("\n%s: %s", render.T(loc, "status_mentions"), mentions))
	b.WriteString(fmt.Sprintf("\n%s: %s", render.T(loc, "status_language"), cfg.Locale))

	return ephemeral(b.String())
}

func (h *Handler) handleSetup(ia Interaction, cfg *models.GuildConfig, sub string, opts []InteractionOption, loc models.Locale) InteractionResponse {
	// channel is the only setup command that works before configuration
	if sub == "channel" {
		channelID := optString(opts, "channel")
		if cfg == nil {
			created := models.NewGuildConfig(ia.GuildID, channelID)
			cfg = &created
		} else {
			cfg.ChannelID = channelID
		}
		return h.save(cfg, loc, render.Tf(loc, "channel_set", channelID))
	}

	if cfg == nil {
		return ephemeral(render.T(loc, "not_configured"))
	}

	switch sub {
	case "thread":
		threadID := optString(opts, "thread")
		cfg.ThreadID = threadID
		if threadID == "" {
			return h.save(cfg, loc, render.T(loc, "thread_cleared"))
		}
		return h.save(cfg, loc, render.Tf(loc, "thread_set", threadID))

	case "splitthreads":
		cfg.SplitThreads = optBool(opts, "enabled")
		if cfg.SplitThreads {
			return h.save(cfg, loc, render.T(loc, "split_on"))
		}
		return h.save(cfg, loc, render.T(loc, "split_off"))

	case "storethread":
		sf, err := models.ParseStorefront(optString(opts, "storefront"))
		if err != nil {
			return ephemeral(render.Tf(loc, "sf_unknown", storefrontList()))
		}
		threadID := optString(opts, "thread")
		if cfg.StoreThreads == nil {
			cfg.StoreThreads = make(map[models.Storefront]string)
		}
		cfg.StoreThreads[sf] = threadID
		return h.save(cfg, loc, render.Tf(loc, "storethread_set", render.StorefrontName(sf), threadID))

	case "storefronts":
		sf, err := models.ParseStorefront(optString(opts, "storefront"))
		if err != nil {
			return ephemeral(render.Tf(loc, "sf_unknown", storefrontList()))
		}
		switch optString(opts, "action") {
		case "add":
			if !cfg.WatchesStorefront(sf) {
				cfg.Storefronts = append(cfg.Storefronts, sf)
			}
			return h.save(cfg, loc, render.Tf(loc, "sf_added", render.StorefrontName(sf)))
		case "remove":
			if cfg.WatchesStorefront(sf) && len(cfg.Storefronts) == 1 {
				return ephemeral(render.T(loc, "sf_last"))
			}
			kept := cfg.Storefronts[:0]
			for _, watched := range cfg.Storefronts {
				if watched != sf {
					kept = append(kept, watched)
				}
			}
			cfg.Storefronts = kept
			return h.save(cfg, loc, render.Tf(loc, "sf_removed", render.StorefrontName(sf)))
		}

	case "mention":
		roleID := optString(opts, "role")
		switch optString(opts, "action") {
		case "add":
			for _, existing := range cfg.MentionRoles {
				if existing == roleID {
					return ephemeral(render.Tf(loc, "mention_added", roleID))
				}
			}
			cfg.MentionRoles = append(cfg.MentionRoles, roleID)
			return h.save(cfg, loc, render.Tf(loc, "mention_added", roleID))
		case "remove":
			kept := cfg.MentionRoles[:0]
			for _, existing := range cfg.MentionRoles {
				if existing != roleID {
					kept = append(kept, existing)
				}
			}
			cfg.MentionRoles = kept
			return h.save(cfg, loc, render.Tf(loc, "mention_removed", roleID))
		}

	case "language":
		newLoc := models.ParseLocale(optString(opts, "locale"))
		cfg.Locale = newLoc
		// Confirm in the newly chosen language
		return h.save(cfg, newLoc, render.Tf(newLoc, "language_set", newLoc))

	case "pause":
		cfg.Enabled = false
		return h.save(cfg, loc, render.T(loc, "paused"))

	case "resume":
		cfg.Enabled = true
		return h.save(cfg, loc, render.T(loc, "resumed"))
	}

	return ephemeral(render.T(loc, "unknown_command"))
}

func (h *Handler) save(cfg *models.GuildConfig, loc models.Locale, confirmation string) InteractionResponse {
	if err := h.guilds.Put(cfg); err != nil {
		logrus.Errorf("Failed to save guild config %s: %v", cfg.GuildID, err)
		return ephemeral(render.T(loc, "error_generic"))
	}
	return ephemeral(confirmation)
}

func storefrontList() string {
	names := make([]string, len(models.AllStorefronts))
	for i, sf := range models.AllStorefronts {
		names[i] = string(sf)
	}
	return strings.Join(names, ", ")
}

func ephemeral(content string) InteractionResponse {
	return InteractionResponse{
		Type: responseTypeChannelMessage,
		Data: &discord.Message{Content: content, Flags: discord.MessageFlagEphemeral},
	}
}
