// Package config reads server settings from flags, falling back to
// CHESS_* environment variables.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/benbeisheim/chessrules/internal/rules"
	"github.com/gofiber/fiber/v2/log"
)

type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     log.Level
	Castling     rules.CastlingPolicy
	Anarchy      bool
}

// Load parses args (without the program name). Flags win over the
// environment.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS and websocket origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace|debug|info|warn|error")
	castling := fs.String("castling", getenv("CHESS_CASTLING", "strict"), "castling policy: strict|lenient")
	anarchy := fs.Bool("anarchy", getenb("CHESS_ANARCHY", false), "start new games with rule checks disabled")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		Anarchy:      *anarchy,
	}
	var err error
	if cfg.LogLevel, err = ParseLevel(*level); err != nil {
		return Config{}, err
	}
	if cfg.Castling, err = rules.ParseCastlingPolicy(*castling); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins splits AllowOrigins for the websocket upgrader.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
