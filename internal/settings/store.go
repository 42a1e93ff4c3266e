package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

const cacheKey = "salon:app_settings"

type settingsDB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store reads booking settings from Postgres with a short-lived Redis cache
// in front. The admin panel writes the table; this side only reads.
type Store struct {
	db     settingsDB
	cache  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a settings store. cache may be nil, which disables
// caching entirely.
func NewStore(db settingsDB, cache *redis.Client, ttl time.Duration, logger *logging.Logger) *Store {
	if db == nil {
		panic("settings: pgx pool required")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{db: db, cache: cache, ttl: ttl, logger: logger}
}

// Load returns the current booking settings. Missing keys fall back to
// Defaults; a cold or unreachable cache is not an error.
func (s *Store) Load(ctx context.Context) (BookingSettings, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached BookingSettings
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			s.logger.Debug("settings cache read failed", "error", err)
		}
	}

	loaded, err := s.loadFromDB(ctx)
	if err != nil {
		return Defaults(), err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(loaded); err == nil {
			if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
				s.logger.Debug("settings cache write failed", "error", err)
			}
		}
	}
	return loaded, nil
}

func (s *Store) loadFromDB(ctx context.Context) (BookingSettings, error) {
	out := Defaults()

	rows, err := s.db.Query(ctx, `SELECT setting_name, setting_value FROM app_settings`)
	if err != nil {
		return out, fmt.Errorf("settings: select app_settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return out, fmt.Errorf("settings: scan setting: %w", err)
		}
		switch name {
		case "show_prices":
			out.ShowPrices = value == "1" || value == "true"
		case "weeks_ahead":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				out.WeeksAhead = n
			}
		}
	}
	return out, rows.Err()
}
