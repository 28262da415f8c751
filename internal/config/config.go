// Package config reads server settings from the environment, after loading an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/DoyleJ11/monopoly-backend/internal/engine"
)

type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// Settings are the defaults a new room starts with.
	Settings   engine.Settings
	MaxPlayers int

	RoomIdleTTL    time.Duration
	ReapInterval   time.Duration
	PingInterval   time.Duration
	OutboxSize     int
	AllowedOrigins []string
}

// Load reads .env files (missing files are fine) and then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup. Every invalid variable is reported.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	p := parser{lookup: lookup}
	cfg := Config{
		Addr:      p.str("ADDR", ":8080"),
		LogLevel:  p.str("LOG_LEVEL", "info"),
		LogFormat: p.str("LOG_FORMAT", "json"),
		Settings: engine.Settings{
			StartingMoney:      p.int("STARTING_MONEY", engine.DefaultStartingMoney),
			DeedCardsPerPlayer: p.int("DEED_CARDS_PER_PLAYER", 0),
			StartingProperty:   p.bool("STARTING_PROPERTY", false),
		},
		MaxPlayers:     p.int("MAX_PLAYERS", engine.DefaultPlayerCount),
		RoomIdleTTL:    p.duration("ROOM_IDLE_TTL", 6*time.Hour),
		ReapInterval:   p.duration("REAP_INTERVAL", time.Minute),
		PingInterval:   p.duration("PING_INTERVAL", 20*time.Second),
		OutboxSize:     p.int("OUTBOX_SIZE", 64),
		AllowedOrigins: p.list("ALLOWED_ORIGINS"),
	}

	if err := cfg.Settings.Validate(); err != nil {
		p.fail("room settings", err)
	}
	if cfg.MaxPlayers < 2 {
		p.fail("MAX_PLAYERS", fmt.Errorf("%d is below 2", cfg.MaxPlayers))
	}
	if cfg.ReapInterval <= 0 {
		p.fail("REAP_INTERVAL", fmt.Errorf("must be positive"))
	}
	if cfg.PingInterval <= 0 {
		p.fail("PING_INTERVAL", fmt.Errorf("must be positive"))
	}
	if cfg.OutboxSize <= 0 {
		p.fail("OUTBOX_SIZE", fmt.Errorf("must be positive"))
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) fail(key string, err error) {
	p.err = multierr.Append(p.err, fmt.Errorf("%s: %w", key, err))
}

func (p *parser) raw(key string) (string, bool) {
	v, ok := p.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p *parser) str(key, def string) string {
	if v, ok := p.raw(key); ok {
		return v
	}
	return def
}

func (p *parser) int(key string, def int) int {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return n
}

func (p *parser) bool(key string, def bool) bool {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v, ok := p.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, err)
		return def
	}
	if d < 0 {
		p.fail(key, fmt.Errorf("negative duration %s", d))
		return def
	}
	return d
}

func (p *parser) list(key string) []string {
	v, ok := p.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
