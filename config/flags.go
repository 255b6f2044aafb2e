package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flag.String("log-file", "", "Write logs to this file as well")
	flagMap      = flag.String("map", "", "Map file to open")
	flagWidth    = flag.Int("width", 0, "Width in tiles for a new map")
	flagHeight   = flag.Int("height", 0, "Height in tiles for a new map")
	flagTileSize = flag.Int("tile-size", 0, "Tile size in pixels")
	flagWrap     = flag.Bool("wrap", false, "Wrap tiles around the edges when shifting the map")
	flagWatch    = flag.Bool("watch", false, "Reload the map when it changes on disk")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagMap != "" {
		cfg.Map.Path = *flagMap
	}
	if *flagWidth > 0 {
		cfg.Map.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Map.Height = *flagHeight
	}
	if *flagTileSize > 0 {
		cfg.Editor.TileSize = *flagTileSize
	}
	if *flagWrap {
		cfg.Editor.ShiftMode = "wrap"
	}
	if *flagWatch {
		cfg.Editor.Watch = true
	}
}
