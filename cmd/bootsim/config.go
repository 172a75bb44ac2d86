package main

import (
	"flag"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// Config holds the simulator configuration.
type Config struct {
	LogLevel  string
	Listen    string
	Bind      string
	PageSize  int
	PageCount int
	DeviceID  uint
	Version   uint
	Image     string
}

// Load parses command-line flags and environment variables.
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.LogLevel, "log-level", lookupEnvOrString("BOOTSIM_LOG_LEVEL", "INFO"), "logging level")
	flag.StringVar(&cfg.Listen, "listen", lookupEnvOrString("BOOTSIM_LISTEN", "0.0.0.0:8007"), "address to serve the bootloader protocol on")
	flag.StringVar(&cfg.Bind, "bind", lookupEnvOrString("BOOTSIM_BIND", "0.0.0.0:2112"), "address to bind for healthz and prometheus metrics endpoints, or \"false\" to disable")
	flag.IntVar(&cfg.PageSize, "page-size", lookupEnvOrInt("BOOTSIM_PAGE_SIZE", 64), "flash page size in bytes")
	flag.IntVar(&cfg.PageCount, "page-count", lookupEnvOrInt("BOOTSIM_PAGE_COUNT", 128), "number of flash pages")
	flag.UintVar(&cfg.DeviceID, "device-id", uint(lookupEnvOrInt("BOOTSIM_DEVICE_ID", 0x70)), "device identifier byte")
	flag.UintVar(&cfg.Version, "protocol-version", uint(lookupEnvOrInt("BOOTSIM_PROTOCOL_VERSION", 0x01)), "protocol version byte")
	flag.StringVar(&cfg.Image, "image", lookupEnvOrString("BOOTSIM_IMAGE", ""), "file to persist the simulated flash contents in (empty: volatile)")
	flag.Parse()

	return cfg
}

// SetupLogging configures the logging level.
func (cfg *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{})
	ll, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		ll = log.InfoLevel
	}
	log.SetLevel(ll)
}

func lookupEnvOrString(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func lookupEnvOrInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Warnf("ignoring non-numeric %s=%q", key, val)
	}
	return defaultVal
}
