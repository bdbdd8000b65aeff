package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Site configuration
	ConfigFile string `long:"config" env:"SITE_CONFIG" default:"site.yml" description:"Site configuration file"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"atomsmith.db" description:"SQLite database file for built feeds"`

	// Server configuration
	Serve           bool   `long:"serve" env:"SERVE" description:"Keep running: serve feeds over HTTP and rebuild periodically"`
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RebuildInterval int    `long:"rebuild-interval" env:"REBUILD_INTERVAL" default:"300" description:"Rebuild interval in seconds"`
	WorkerCount     int    `long:"worker-count" env:"WORKER_COUNT" default:"1" description:"Number of background build workers"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

// parse reads flags from args, or os.Args when args is nil.
func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.RebuildInterval <= 0 {
		return nil, fmt.Errorf("rebuild interval must be positive, got %d", raw.RebuildInterval)
	}
	if raw.WorkerCount <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", raw.WorkerCount)
	}

	cfg := &Cfg{
		ConfigFile:      raw.ConfigFile,
		DBPath:          raw.DBPath,
		Serve:           raw.Serve,
		Port:            raw.Port,
		RebuildInterval: raw.RebuildInterval,
		WorkerCount:     raw.WorkerCount,
		APIAccessKey:    raw.APIAccessKey,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
