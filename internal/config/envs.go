// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/pathviz/gridgraph"
	"github.com/katalvlaran/pathviz/maze"
	"github.com/katalvlaran/pathviz/playback"
)

// Prefix is prepended to every variable name.
const Prefix = "PATHVIZ_"

// ErrInvalid wraps every rejected value.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the application's configuration values.
type Config struct {
	Rows      int             // Grid rows
	Cols      int             // Grid columns
	Addr      string          // Listen address for the HTTP API
	Timing    playback.Timing // Animation delays and speed
	LogLevel  string          // debug, info, warn or error
	LogFormat string          // text or json
	Seed      int64           // Maze seed; 0 picks one per run
	GinMode   string          // Mode for the Gin framework (release, debug, test)
}

// Load reads files (default ".env") into the environment without
// overriding variables already set, then builds and validates a Config.
// A missing default .env is not an error; a missing explicit file is.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load env file: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Rows, err = getEnvAsInt("ROWS", gridgraph.DefaultRows); err != nil {
		return Config{}, err
	}
	if cfg.Cols, err = getEnvAsInt("COLS", gridgraph.DefaultCols); err != nil {
		return Config{}, err
	}
	cfg.Addr = getEnvWithDefault("ADDR", ":8080")

	if cfg.Timing.Speed, err = playback.ParseSpeed(getEnvWithDefault("SPEED", "medium")); err != nil {
		return Config{}, fmt.Errorf("%w: %sSPEED: %v", ErrInvalid, Prefix, err)
	}
	if cfg.Timing.TraversalDelay, err = getEnvAsMillis("TRAVERSAL_DELAY_MS", playback.DefaultTraversalDelay); err != nil {
		return Config{}, err
	}
	if cfg.Timing.PathDelay, err = getEnvAsMillis("PATH_DELAY_MS", playback.DefaultPathDelay); err != nil {
		return Config{}, err
	}
	if cfg.Timing.MazeDelay, err = getEnvAsMillis("MAZE_DELAY_MS", playback.DefaultMazeDelay); err != nil {
		return Config{}, err
	}

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "text")
	seed, err := getEnvAsInt("SEED", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = int64(seed)
	cfg.GinMode = getEnvWithDefault("GIN_MODE", "release")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the grid can hold the default endpoints and that
// the timing is usable.
func (c Config) Validate() error {
	if c.Rows < maze.MinChamber || c.Cols < maze.MinChamber {
		return fmt.Errorf("%w: grid %dx%d, need at least %dx%d", ErrInvalid, c.Rows, c.Cols, maze.MinChamber, maze.MinChamber)
	}
	if _, err := c.Grid(); err != nil {
		return fmt.Errorf("%w: grid %dx%d: %w", ErrInvalid, c.Rows, c.Cols, err)
	}
	if err := c.Timing.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch c.GinMode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("%w: %sGIN_MODE %q", ErrInvalid, Prefix, c.GinMode)
	}
	return nil
}

// Grid returns an empty Rows×Cols grid with start (1,1) and end
// (Rows-2, Cols-2).
func (c Config) Grid() (*gridgraph.Grid, error) {
	return gridgraph.New(c.Rows, c.Cols,
		gridgraph.Pos{Row: 1, Col: 1},
		gridgraph.Pos{Row: c.Rows - 2, Col: c.Cols - 2})
}

// RunSeed returns Seed, or a time-derived seed when Seed is 0.
func (c Config) RunSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(Prefix + key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer variable or returns defaultValue if not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(Prefix + key)
	if !exists {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s must be an integer: %v", ErrInvalid, Prefix, key, err)
	}
	return value, nil
}

// getEnvAsMillis retrieves a whole number of milliseconds.
func getEnvAsMillis(key string, defaultValue time.Duration) (time.Duration, error) {
	ms, err := getEnvAsInt(key, int(defaultValue/time.Millisecond))
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
