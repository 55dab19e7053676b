package scan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/ledger"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/MATrsx/freegameping/internal/storefronts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGuilds struct {
	configs []models.GuildConfig
	err     error
}

func (f *fakeGuilds) ListAll() ([]models.GuildConfig, error) {
	return f.configs, f.err
}

type fakeAdapter struct {
	sf     models.Storefront
	promos []models.Promotion
	err    error
}

func (f *fakeAdapter) Storefront() models.Storefront { return f.sf }

func (f *fakeAdapter) Fetch(ctx context.Context) ([]models.Promotion, error) {
	return f.promos, f.err
}

type announceCall struct {
	destination string
	msg         discord.Message
}

// recordingAnnouncer captures deliveries; failDestinations simulate broken
// destinations and block gates a delivery until released.
type recordingAnnouncer struct {
	mu               sync.Mutex
	calls            []announceCall
	failDestinations map[string]bool
	block            chan struct{}
}

func (r *recordingAnnouncer) Announce(ctx context.Context, destinationID string, msg discord.Message) bool {
	r.mu.Lock()
	r.calls = append(r.calls, announceCall{destination: destinationID, msg: msg})
	r.mu.Unlock()
	if r.block != nil {
		<-r.block
	}
	return !r.failDestinations[destinationID]
}

func (r *recordingAnnouncer) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type recordingAlerter struct {
	mu      sync.Mutex
	reports []*models.ScanReport
}

func (r *recordingAlerter) ScanDegraded(rep *models.ScanReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func promo(sf models.Storefront, id, title string) models.Promotion {
	return models.Promotion{Storefront: sf, NativeID: id, Title: title, URL: "https://example.com/" + id}
}

func newTestService(t *testing.T, guilds []models.GuildConfig, adapters map[models.Storefront]storefronts.Adapter, announcer Announcer) (*Service, storage.Interface) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(&fakeGuilds{configs: guilds}, store, adapters, announcer, &recordingAlerter{}), store
}

func TestRun_AnnouncesNewPromotionOnce(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic, models.StorefrontSteam}

	p1 := promo(models.StorefrontEpic, "p1", "Free Game")
	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic:  &fakeAdapter{sf: models.StorefrontEpic, promos: []models.Promotion{p1}},
		models.StorefrontSteam: &fakeAdapter{sf: models.StorefrontSteam}, // no data
	}

	announcer := &recordingAnnouncer{}
	service, store := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	rep, err := service.Run(context.Background(), "manual")
	require.NoError(t, err)

	// Exactly one delivery, to the routed destination
	require.Equal(t, 1, announcer.callCount())
	assert.Equal(t, "chan-1", announcer.calls[0].destination)
	assert.Equal(t, 1, rep.Announced)
	assert.Equal(t, 1, rep.PerGuild["guild-1"])
	assert.Equal(t, 0, rep.DeliveryFails)

	// Ledger persisted once with p1's identity
	led := ledger.Load(store)
	assert.True(t, led.Contains(p1.Identity()))
	assert.Equal(t, 1, led.Len())
}

func TestRun_SecondScanSkipsSeenPromotions(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{
			sf:     models.StorefrontEpic,
			promos: []models.Promotion{promo(models.StorefrontEpic, "p1", "Free Game")},
		},
	}

	announcer := &recordingAnnouncer{}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	_, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)
	require.Equal(t, 1, announcer.callCount())

	// Same adapter response next scan: nothing delivered
	rep, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)
	assert.Equal(t, 1, announcer.callCount())
	assert.Equal(t, 0, rep.Announced)
}

func TestRun_FanOutRecordsIdentityOnce(t *testing.T) {
	guildA := models.NewGuildConfig("guild-a", "chan-a")
	guildA.Storefronts = []models.Storefront{models.StorefrontGOG}
	guildB := models.NewGuildConfig("guild-b", "chan-b")
	guildB.Storefronts = []models.Storefront{models.StorefrontGOG}

	p := promo(models.StorefrontGOG, "shared", "Shared Game")
	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontGOG: &fakeAdapter{sf: models.StorefrontGOG, promos: []models.Promotion{p}},
	}

	// Delivery to guild A's channel fails; guild B still gets its own attempt
	announcer := &recordingAnnouncer{failDestinations: map[string]bool{"chan-a": true}}
	service, store := newTestService(t, []models.GuildConfig{guildA, guildB}, adapters, announcer)

	rep, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)

	assert.Equal(t, 2, announcer.callCount())
	assert.Equal(t, 1, rep.DeliveryFails)
	assert.Equal(t, 1, rep.Announced)

	// Recorded exactly once despite two destinations and one failure
	assert.Equal(t, 1, rep.PerStorefront[models.StorefrontGOG])
	led := ledger.Load(store)
	assert.True(t, led.Contains(p.Identity()))
	assert.Equal(t, 1, led.Len())
}

func TestRun_DeliveryFailureSuppressesRetry(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontItch}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontItch: &fakeAdapter{
			sf:     models.StorefrontItch,
			promos: []models.Promotion{promo(models.StorefrontItch, "p1", "Game")},
		},
	}

	announcer := &recordingAnnouncer{failDestinations: map[string]bool{"chan-1": true}}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	rep, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.DeliveryFails)

	// The identity was recorded despite the failure, so the next scan
	// does not retry.
	rep, err = service.Run(context.Background(), "scheduled")
	require.NoError(t, err)
	assert.Equal(t, 0, rep.DeliveryFails)
	assert.Equal(t, 1, announcer.callCount())
}

func TestRun_AdapterErrorIsIsolated(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic, models.StorefrontSteam}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{sf: models.StorefrontEpic, err: errors.New("upstream 500")},
		models.StorefrontSteam: &fakeAdapter{
			sf:     models.StorefrontSteam,
			promos: []models.Promotion{promo(models.StorefrontSteam, "ok", "Working Game")},
		},
	}

	announcer := &recordingAnnouncer{}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	alerter := &recordingAlerter{}
	service := NewService(&fakeGuilds{configs: []models.GuildConfig{guild}}, store, adapters, announcer, alerter)

	rep, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)

	assert.Equal(t, 1, rep.AdapterErrors)
	assert.Equal(t, 1, rep.Announced)
	require.Len(t, alerter.reports, 1)
	assert.Equal(t, rep.RunID, alerter.reports[0].RunID)
}

func TestRun_DisabledGuildSkipped(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Enabled = false

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{
			sf:     models.StorefrontEpic,
			promos: []models.Promotion{promo(models.StorefrontEpic, "p1", "Game")},
		},
	}

	announcer := &recordingAnnouncer{}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	rep, err := service.Run(context.Background(), "scheduled")
	require.NoError(t, err)
	assert.Equal(t, 0, announcer.callCount())
	assert.Equal(t, 0, rep.GuildsScanned)
}

func TestRun_GuildListingErrorAborts(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	service := NewService(&fakeGuilds{err: errors.New("storage down")}, store, nil, &recordingAnnouncer{}, &recordingAlerter{})

	_, err = service.Run(context.Background(), "scheduled")
	assert.Error(t, err)
}

func TestRun_RejectsConcurrentScan(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{
			sf:     models.StorefrontEpic,
			promos: []models.Promotion{promo(models.StorefrontEpic, "p1", "Game")},
		},
	}

	block := make(chan struct{})
	announcer := &recordingAnnouncer{block: block}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := service.Run(context.Background(), "scheduled")
		assert.NoError(t, err)
	}()

	// Wait until the first scan is blocked inside delivery, holding the
	// run lock
	for announcer.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := service.Run(context.Background(), "manual")
	assert.ErrorIs(t, err, ErrScanInProgress)

	runID, ok := service.TriggerAsync("manual")
	assert.False(t, ok)
	assert.Empty(t, runID)

	close(block)
	<-done
}

func TestTriggerAsync_RunsInBackground(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{
			sf:     models.StorefrontEpic,
			promos: []models.Promotion{promo(models.StorefrontEpic, "p1", "Game")},
		},
	}

	announcer := &recordingAnnouncer{}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	runID, ok := service.TriggerAsync("manual")
	require.True(t, ok)
	assert.NotEmpty(t, runID)

	// The background goroutine releases the lock when done
	for {
		if _, err := service.Run(context.Background(), "manual"); err == nil {
			break
		}
		time.Sleep(time.Millisecond)
	}
	assert.GreaterOrEqual(t, announcer.callCount(), 1)
}

func TestGetMetrics(t *testing.T) {
	guild := models.NewGuildConfig("guild-1", "chan-1")
	guild.Storefronts = []models.Storefront{models.StorefrontEpic}

	adapters := map[models.Storefront]storefronts.Adapter{
		models.StorefrontEpic: &fakeAdapter{
			sf:     models.StorefrontEpic,
			promos: []models.Promotion{promo(models.StorefrontEpic, "p1", "Game")},
		},
	}

	announcer := &recordingAnnouncer{}
	service, _ := newTestService(t, []models.GuildConfig{guild}, adapters, announcer)

	_, err := service.Run(context.Background(), "manual")
	require.NoError(t, err)

	metrics := service.GetMetrics()
	assert.Contains(t, metrics, `"total_runs": 1`)
	assert.Contains(t, metrics, `"last_trigger": "manual"`)
	assert.Contains(t, metrics, `"announced": 1`)
}
