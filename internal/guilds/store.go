package guilds

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MATrsx/freegameping/internal/models"
	"github.com/MATrsx/freegameping/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const blobPrefix = "guilds/"

// Store persists one GuildConfig blob per guild, validating every record
// on the way in and out.
type Store struct {
	storage  storage.Interface
	validate *validator.Validate
}

// NewStore creates a guild configuration store over the given blob storage
func NewStore(st storage.Interface) *Store {
	v := validator.New()

	// Tag handlers for the domain enums; registration only fails for
	// empty tag names, so the errors are ignored.
	_ = v.RegisterValidation("storefront", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStorefront(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
		for _, loc := range models.AllLocales {
			if string(loc) == fl.Field().String() {
				return true
			}
		}
		return false
	})

	return &Store{storage: st, validate: v}
}

func blobName(guildID string) string {
	return blobPrefix + guildID + ".json"
}

// Get returns the configuration for one guild. A missing guild surfaces
// storage.ErrNotFound; a stored record that fails validation is an error.
func (s *Store) Get(guildID string) (*models.GuildConfig, error) {
	data, err := s.storage.Retrieve(blobName(guildID))
	if err != nil {
		return nil, err
	}

	var cfg models.GuildConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guild config %s: %w", guildID, err)
	}

	if err := s.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("stored guild config %s is invalid: %w", guildID, err)
	}

	return &cfg, nil
}

// Put validates and persists one guild's configuration, stamping UpdatedAt
func (s *Store) Put(cfg *models.GuildConfig) error {
	if err := s.validate.Struct(cfg); err != nil {
		return fmt.Errorf("guild config validation failed: %w", err)
	}

	cfg.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal guild config: %w", err)
	}

	return s.storage.Store(blobName(cfg.GuildID), data)
}

// ListAll returns every readable guild configuration. A record that fails
// to load or validate is logged and skipped; the rest proceed.
func (s *Store) ListAll() ([]models.GuildConfig, error) {
	names, err := s.storage.List(blobPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}

	configs := make([]models.GuildConfig, 0, len(names))
	for _, name := range names {
		data, err := s.storage.Retrieve(name)
		if err != nil {
			logrus.Errorf("Skipping guild config %s: %v", name, err)
			continue
		}

		var cfg models.GuildConfig
		if err := json.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Skipping malformed guild config %s: %v", name, err)
			continue
		}

		if err := s.validate.Struct(cfg); err != nil {
			logrus.Errorf("Skipping invalid guild config %s: %v", name, err)
			continue
		}

		configs = append(configs, cfg)
	}

	return configs, nil
}

// Delete removes one guild's configuration
func (s *Store) Delete(guildID string) error {
	return s.storage.Delete(blobName(guildID))
}
