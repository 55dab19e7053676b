// Package scan implements the polling run: pull every watched storefront,
// filter against the dedup ledger, fan announcements out to every enabled
// guild, and commit the ledger once at the end.
package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MATrsx/freegameping/internal/discord"
	"github.com/MATrsx/freegameping/internal/ledger"
	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/render"
	"github.com/MATrsx/freegameping/internal/routing"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/MATrsx/freegameping/internal/storefronts"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrScanInProgress is returned when a trigger arrives while another scan
// holds the run lock. Concurrent triggers are dropped, never interleaved:
// the ledger is persisted as a single blob and two concurrent scans would
// lose each other's records.
var ErrScanInProgress = errors.New("a scan is already in progress")

// scanTimeout is a safety net for background scans; there is no external
// cancellation once a scan starts.
const scanTimeout = 5 * time.Minute

// recordDespiteDeliveryFailure: a promotion is recorded in the ledger even
// when every delivery attempt for it failed. A transient failure therefore
// becomes a silent miss rather than a retry, which avoids re-announcing
// storms against permanently broken destinations.
const recordDespiteDeliveryFailure = true

// GuildLister supplies the guild configurations to scan.
type GuildLister interface {
	ListAll() ([]models.GuildConfig, error)
}

// Announcer delivers one rendered announcement; it reports success and
// never propagates transport errors.
type Announcer interface {
	Announce(ctx context.Context, destinationID string, msg discord.Message) bool
}

// Alerter receives a best-effort notification about degraded runs.
type Alerter interface {
	ScanDegraded(rep *models.ScanReport)
}

// Service orchestrates scan runs. The run lock serializes scans from the
// scheduler, the HTTP trigger and slash commands.
type Service struct {
	guilds      GuildLister
	ledgerStore storage.Interface
	adapters    map[models.Storefront]storefronts.Adapter
	notifier    Announcer
	alerter     Alerter

	runLock sync.Mutex

	mu      sync.RWMutex
	metrics *Metrics
}

// Metrics holds scan metrics for the /metrics endpoint
type Metrics struct {
	TotalRuns       int                       `json:"total_runs"`
	LastRunID       string                    `json:"last_run_id"`
	LastTrigger     string                    `json:"last_trigger"`
	LastRun         time.Time                 `json:"last_run"`
	LastRunDuration string                    `json:"last_run_duration"`
	Announced       int                       `json:"announced"`
	PerStorefront   map[models.Storefront]int `json:"per_storefront"`
	DeliveryFails   int                       `json:"delivery_fails"`
	AdapterErrors   int                       `json:"adapter_errors"`
	GuildsScanned   int                       `json:"guilds_scanned"`
}

// NewService creates the scan orchestrator
func NewService(guilds GuildLister, ledgerStore storage.Interface, adapters map[models.Storefront]storefronts.Adapter, notifier Announcer, alerter Alerter) *Service {
	return &Service{
		guilds:      guilds,
		ledgerStore: ledgerStore,
		adapters:    adapters,
		notifier:    notifier,
		alerter:     alerter,
		metrics: &Metrics{
			PerStorefront: make(map[models.Storefront]int),
		},
	}
}

// Run performs one scan synchronously. A concurrent trigger gets
// ErrScanInProgress.
func (s *Service) Run(ctx context.Context, trigger string) (*models.ScanReport, error) {
	if !s.runLock.TryLock() {
		return nil, ErrScanInProgress
	}
	defer s.runLock.Unlock()

	return s.run(ctx, trigger, uuid.NewString())
}

// TriggerAsync dispatches a scan on a background goroutine and returns
// immediately with its run id. It returns false, without starting
// anything, when a scan already holds the run lock (dropped, not queued).
func (s *Service) TriggerAsync(trigger string) (string, bool) {
	if !s.runLock.TryLock() {
		logrus.Warnf("Dropping %s scan trigger: a scan is already running", trigger)
		return "", false
	}

	runID := uuid.NewString()
	go func() {
		defer s.runLock.Unlock()
		defer func() {
			if r := recover(); r != nil {
				logrus.Errorf("Background scan %s panicked: %v", runID, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		if _, err := s.run(ctx, trigger, runID); err != nil {
			logrus.Errorf("Background scan %s failed: %v", runID, err)
		}
	}()

	return runID, true
}

// run executes one scan; the caller holds the run lock.
func (s *Service) run(ctx context.Context, trigger, runID string) (*models.ScanReport, error) {
	rep := &models.ScanReport{
		RunID:         runID,
		Trigger:       trigger,
		StartedAt:     time.Now(),
		PerGuild:      make(map[string]int),
		PerStorefront: make(map[models.Storefront]int),
	}

	logrus.Infof("Starting scan %s (trigger: %s)", runID, trigger)

	led := ledger.Load(s.ledgerStore)

	configs, err := s.guilds.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}

	var enabled []models.GuildConfig
	for _, cfg := range configs {
		if cfg.Enabled {
			enabled = append(enabled, cfg)
		}
	}
	rep.GuildsScanned = len(enabled)

	catalogs := s.fetchCatalogs(ctx, watchedStorefronts(enabled), rep)

	for _, cfg := range enabled {
		for _, sf := range cfg.Storefronts {
			promos, ok := catalogs[sf]
			if !ok || len(promos) == 0 {
				continue // no data is not an error
			}
			s.processStorefront(ctx, cfg, sf, promos, led, rep)
		}
	}

	if err := led.Persist(s.ledgerStore); err != nil {
		// The in-memory dedup decisions already drove this scan; losing
		// the blob only risks re-announcing next scan.
		logrus.Errorf("Failed to persist ledger: %v", err)
	}

	rep.Duration = time.Since(rep.StartedAt)
	s.updateMetrics(rep)

	if rep.AdapterErrors > 0 || rep.DeliveryFails > 0 {
		s.alerter.ScanDegraded(rep)
	}

	logrus.Infof("Scan %s finished in %v: %d announcements to %d guilds (%d delivery failures, %d adapter errors)",
		runID, rep.Duration, rep.Announced, rep.GuildsScanned, rep.DeliveryFails, rep.AdapterErrors)

	return rep, nil
}

// watchedStorefronts returns the union of storefronts watched by the
// enabled guilds, in canonical order.
func watchedStorefronts(configs []models.GuildConfig) []models.Storefront {
	wanted := make(map[models.Storefront]bool)
	for _, cfg := range configs {
		for _, sf := range cfg.Storefronts {
			wanted[sf] = true
		}
	}

	var out []models.Storefront
	for _, sf := range models.AllStorefronts {
		if wanted[sf] {
			out = append(out, sf)
		}
	}
	return out
}

// fetchCatalogs pulls each watched storefront once, concurrently. Every
// guild in this scan reads from the same catalog snapshot. An adapter
// error means "no data this run" for that storefront.
func (s *Service) fetchCatalogs(ctx context.Context, watched []models.Storefront, rep *models.ScanReport) map[models.Storefront][]models.Promotion {
	catalogs := make(map[models.Storefront][]models.Promotion, len(watched))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, sf := range watched {
		adapter, ok := s.adapters[sf]
		if !ok {
			logrus.Warnf("No adapter registered for storefront %s", sf)
			continue
		}

		sf := sf
		g.Go(func() error {
			promos, err := adapter.Fetch(gctx)
			if err != nil {
				logrus.Errorf("Storefront %s fetch failed: %v", sf, err)
				mu.Lock()
				rep.AdapterErrors++
				mu.Unlock()
				return nil
			}

			logrus.Infof("Storefront %s: %d free promotions", sf, len(promos))
			mu.Lock()
			catalogs[sf] = promos
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return catalogs
}

// processStorefront announces the unseen promotions of one storefront to
// one guild. A panic here is contained so one bad guild or storefront
// never aborts the rest of the scan.
func (s *Service) processStorefront(ctx context.Context, cfg models.GuildConfig, sf models.Storefront, promos []models.Promotion, led *ledger.Ledger, rep *models.ScanReport) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Recovered while processing %s for guild %s: %v", sf, cfg.GuildID, r)
		}
	}()

	destination := routing.Route(cfg, sf)

	for _, promo := range promos {
		identity := promo.Identity()
		if led.Contains(identity) {
			continue // announced in an earlier scan; promotions are immutable once seen
		}

		msg := render.Announcement(promo, cfg.Locale)
		if preamble := render.MentionPreamble(cfg.MentionRoles); preamble != "" {
			msg.Content = preamble
			msg.AllowedMentions = &discord.AllowedMentions{Parse: []string{}, Roles: cfg.MentionRoles}
		}

		if s.notifier.Announce(ctx, destination, msg) {
			rep.Announced++
			rep.PerGuild[cfg.GuildID]++
		} else {
			rep.DeliveryFails++
		}

		if recordDespiteDeliveryFailure {
			if led.Record(identity) {
				rep.PerStorefront[sf]++
			}
		}
	}
}

func (s *Service) updateMetrics(rep *models.ScanReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalRuns++
	s.metrics.LastRunID = rep.RunID
	s.metrics.LastTrigger = rep.Trigger
	s.metrics.LastRun = rep.StartedAt
	s.metrics.LastRunDuration = rep.Duration.String()
	s.metrics.Announced = rep.Announced
	s.metrics.DeliveryFails = rep.DeliveryFails
	s.metrics.AdapterErrors = rep.AdapterErrors
	s.metrics.GuildsScanned = rep.GuildsScanned

	s.metrics.PerStorefront = make(map[models.Storefront]int, len(rep.PerStorefront))
	for sf, count := range rep.PerStorefront {
		s.metrics.PerStorefront[sf] = count
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
