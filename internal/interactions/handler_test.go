package interactions

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/guilds"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/scan"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	report *models.ScanReport
	err    error
}

func (f *fakeScanner) Run(ctx context.Context, trigger string) (*models.ScanReport, error) {
	return f.report, f.err
}

type fakeResponder struct {
	edits chan discord.Message
}

func (f *fakeResponder) EditOriginalResponse(ctx context.Context, appID, token string, msg discord.Message) error {
	f.edits <- msg
	return nil
}

type testRig struct {
	handler   *Handler
	guilds    *guilds.Store
	scanner   *fakeScanner
	responder *fakeResponder
	private   ed25519.PrivateKey
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	public, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	st, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	guildStore := guilds.NewStore(st)
	scanner := &fakeScanner{report: &models.ScanReport{RunID: "run-1", Announced: 2}}
	responder := &fakeResponder{edits: make(chan discord.Message, 1)}

	handler, err := NewHandler(hex.EncodeToString(public), "app-1", guildStore, scanner, responder)
	require.NoError(t, err)

	return &testRig{
		handler:   handler,
		guilds:    guildStore,
		scanner:   scanner,
		responder: responder,
		private:   private,
	}
}

// post signs and dispatches an interaction, returning the recorder.
func (r *testRig) post(t *testing.T, ia Interaction) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(ia)
	require.NoError(t, err)

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	sig := ed25519.Sign(r.private, append([]byte(timestamp), body...))

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", timestamp)

	rec := httptest.NewRecorder()
	r.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) InteractionResponse {
	t.Helper()
	var resp InteractionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func command(guildID, name, sub string, opts ...InteractionOption) Interaction {
	return Interaction{
		Type:    interactionTypeCommand,
		Token:   "tok",
		GuildID: guildID,
		Locale:  "en",
		Data: InteractionData{
			Name: name,
			Options: []InteractionOption{
				{Name: sub, Type: discord.OptionTypeSubCommand, Options: opts},
			},
		},
	}
}

func TestServeHTTP_RejectsBadSignature(t *testing.T) {
	rig := newTestRig(t)

	body, err := json.Marshal(Interaction{Type: interactionTypePing})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(make([]byte, ed25519.SignatureSize)))
	req.Header.Set("X-Signature-Timestamp", "12345")

	rec := httptest.NewRecorder()
	rig.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_RejectsMissingTimestamp(t *testing.T) {
	rig := newTestRig(t)

	body, err := json.Marshal(Interaction{Type: interactionTypePing})
	require.NoError(t, err)

	sig := ed25519.Sign(rig.private, body)
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewReader(body))
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))

	rec := httptest.NewRecorder()
	rig.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServeHTTP_Ping(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.post(t, Interaction{Type: interactionTypePing})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, responseTypePong, resp.Type)
	assert.Nil(t, resp.Data)
}

func TestSetupChannel_CreatesConfigWithDefaults(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.post(t, command("g1", "setup", "channel",
		InteractionOption{Name: "channel", Type: discord.OptionTypeChannel, Value: "c42"}))

	resp := decodeResponse(t, rec)
	assert.Equal(t, responseTypeChannelMessage, resp.Type)
	assert.Contains(t, resp.Data.Content, "<#c42>")
	assert.Equal(t, discord.MessageFlagEphemeral, resp.Data.Flags)

	cfg, err := rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "c42", cfg.ChannelID)
	assert.Equal(t, models.AllStorefronts, cfg.Storefronts)
	assert.Equal(t, models.LocaleEnglish, cfg.Locale)
}

func TestSetupChannel_UpdatesExistingConfig(t *testing.T) {
	rig := newTestRig(t)

	existing := models.NewGuildConfig("g1", "old")
	existing.Locale = models.LocaleGerman
	require.NoError(t, rig.guilds.Put(&existing))

	rig.post(t, command("g1", "setup", "channel",
		InteractionOption{Name: "channel", Type: discord.OptionTypeChannel, Value: "new"}))

	cfg, err := rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.ChannelID)
	assert.Equal(t, models.LocaleGerman, cfg.Locale)
}

func TestSetup_RequiresConfiguration(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.post(t, command("g1", "setup", "pause"))

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Data.Content, "/setup channel")
}

func TestSetupStorefronts_RejectsRemovingLast(t *testing.T) {
	rig := newTestRig(t)

	cfg := models.NewGuildConfig("g1", "c1")
	cfg.Storefronts = []models.Storefront{models.StorefrontEpic}
	require.NoError(t, rig.guilds.Put(&cfg))

	rec := rig.post(t, command("g1", "setup", "storefronts",
		InteractionOption{Name: "action", Type: discord.OptionTypeString, Value: "remove"},
		InteractionOption{Name: "storefront", Type: discord.OptionTypeString, Value: "epic"}))

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Data.Content, "At least one storefront")

	stored, err := rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, []models.Storefront{models.StorefrontEpic}, stored.Storefronts)
}

func TestSetupStorefronts_AddAndRemove(t *testing.T) {
	rig := newTestRig(t)

	cfg := models.NewGuildConfig("g1", "c1")
	require.NoError(t, rig.guilds.Put(&cfg))

	rig.post(t, command("g1", "setup", "storefronts",
		InteractionOption{Name: "action", Type: discord.OptionTypeString, Value: "remove"},
		InteractionOption{Name: "storefront", Type: discord.OptionTypeString, Value: "steam"}))

	stored, err := rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.False(t, stored.WatchesStorefront(models.StorefrontSteam))

	rig.post(t, command("g1", "setup", "storefronts",
		InteractionOption{Name: "action", Type: discord.OptionTypeString, Value: "add"},
		InteractionOption{Name: "storefront", Type: discord.OptionTypeString, Value: "steam"}))

	stored, err = rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.True(t, stored.WatchesStorefront(models.StorefrontSteam))
}

func TestSetupLanguage_RepliesInNewLanguage(t *testing.T) {
	rig := newTestRig(t)

	cfg := models.NewGuildConfig("g1", "c1")
	require.NoError(t, rig.guilds.Put(&cfg))

	rec := rig.post(t, command("g1", "setup", "language",
		InteractionOption{Name: "locale", Type: discord.OptionTypeString, Value: "de"}))

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Data.Content, "Sprache")

	stored, err := rig.guilds.Get("g1")
	require.NoError(t, err)
	assert.Equal(t, models.LocaleGerman, stored.Locale)
}

func TestFreegamesStatus_NotConfigured(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.post(t, command("g1", "freegames", "status"))

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Data.Content, "not set up")
}

func TestFreegamesStatus_ShowsSettings(t *testing.T) {
	rig := newTestRig(t)

	cfg := models.NewGuildConfig("g1", "c1")
	cfg.MentionRoles = []string{"r1"}
	require.NoError(t, rig.guilds.Put(&cfg))

	rec := rig.post(t, command("g1", "freegames", "status"))

	resp := decodeResponse(t, rec)
	assert.Contains(t, resp.Data.Content, "<#c1>")
	assert.Contains(t, resp.Data.Content, "<@&r1>")
	assert.Contains(t, resp.Data.Content, "Epic Games Store")
}

func TestFreegamesCheck_DefersAndFollowsUp(t *testing.T) {
	rig := newTestRig(t)

	rec := rig.post(t, command("g1", "freegames", "check"))

	resp := decodeResponse(t, rec)
	assert.Equal(t, responseTypeDeferredMessage, resp.Type)
	assert.Equal(t, discord.MessageFlagEphemeral, resp.Data.Flags)

	select {
	case edit := <-rig.responder.edits:
		assert.Contains(t, edit.Content, "2")
	case <-time.After(2 * time.Second):
		t.Fatal("no follow-up edit within deadline")
	}
}

func TestFreegamesCheck_ReportsScanAlreadyRunning(t *testing.T) {
	rig := newTestRig(t)
	rig.scanner.report = nil
	rig.scanner.err = scan.ErrScanInProgress

	rig.post(t, command("g1", "freegames", "check"))

	select {
	case edit := <-rig.responder.edits:
		assert.Contains(t, edit.Content, "already running")
	case <-time.After(2 * time.Second):
		t.Fatal("no follow-up edit within deadline")
	}
}
