package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/wharf-watcher/internal/availability"
)

const defaultReserveURL = "https://www.tablecheck.com/ja/shops/takanawa-wharf/reserve?utm_source=hp"

// VenueName is the display name used in notification headers.
const VenueName = "高輪 WHARF"

// SeatCategories returns the venue's bookable seat types in notification
// order. The service_category ids are specific to 高輪 WHARF on TableCheck.
func SeatCategories() []availability.SeatCategory {
	return []availability.SeatCategory{
		{Key: "window_1st_couple", Label: "窓際一列目カップルシート", ServiceCategory: "688ab4fb01b93519106912dd"},
		{Key: "window_2nd_couple", Label: "窓際二列目カップルシート", ServiceCategory: "688ab5618001bc122c53b18f"},
		{Key: "view_2p_only", Label: "2名専用ビューシート", ServiceCategory: "6910dba6b600519f9e0efc07"},
	}
}

// Config is the immutable per-run configuration, assembled once at startup.
type Config struct {
	ReserveURL string
	TargetDate string // YYYY-MM-DD
	PartySize  int

	// Notify window: local hours during which the check runs at all.
	NotifyStartHour int
	NotifyEndHour   int

	// Desired slot window: slot start hours worth notifying about.
	SlotStartHour int
	SlotEndHour   int

	Timezone string
	Location *time.Location

	LineToken    string
	LineToUserID string

	VenueName      string
	SeatCategories []availability.SeatCategory
}

// FromEnv loads configuration from the environment, reading a .env file
// first if one is present. All variables are optional and fall back to the
// documented defaults.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ReserveURL:     strings.TrimSpace(getenv("URL", defaultReserveURL)),
		TargetDate:     strings.TrimSpace(getenv("TARGET_DATE", "2025-12-24")),
		Timezone:       getenv("TIMEZONE", "Asia/Tokyo"),
		LineToken:      strings.TrimSpace(os.Getenv("LINE_CHANNEL_ACCESS_TOKEN")),
		LineToUserID:   strings.TrimSpace(os.Getenv("LINE_TO_USER_ID")),
		VenueName:      VenueName,
		SeatCategories: SeatCategories(),
	}
	if cfg.TargetDate == "" {
		cfg.TargetDate = "2025-12-24"
	}

	var err error
	if cfg.PartySize, err = intEnv("PARTY", 2); err != nil {
		return Config{}, err
	}
	if cfg.NotifyStartHour, err = intEnv("START_HOUR", 0); err != nil {
		return Config{}, err
	}
	if cfg.NotifyEndHour, err = intEnv("END_HOUR", 24); err != nil {
		return Config{}, err
	}
	if cfg.SlotStartHour, err = intEnv("SLOT_START_HOUR", 18); err != nil {
		return Config{}, err
	}
	if cfg.SlotEndHour, err = intEnv("SLOT_END_HOUR", 20); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}

// Validate checks value ranges. Empty windows (end <= start) are allowed;
// the gate simply never opens then.
func (c Config) Validate() error {
	if c.ReserveURL == "" {
		return fmt.Errorf("reserve URL must not be empty")
	}
	if _, err := time.Parse("2006-01-02", c.TargetDate); err != nil {
		return fmt.Errorf("invalid target date %q (want YYYY-MM-DD)", c.TargetDate)
	}
	if c.PartySize < 1 {
		return fmt.Errorf("party size must be >= 1 (got %d)", c.PartySize)
	}
	for _, h := range []struct {
		name string
		v    int
	}{
		{"notify start hour", c.NotifyStartHour},
		{"notify end hour", c.NotifyEndHour},
		{"slot start hour", c.SlotStartHour},
		{"slot end hour", c.SlotEndHour},
	} {
		if h.v < 0 || h.v > 24 {
			return fmt.Errorf("%s must be in 0..24 (got %d)", h.name, h.v)
		}
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func intEnv(k string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: want an integer", k, v)
	}
	return n, nil
}
