package connector

import (
	"strings"
	"sync"
	"time"
)

// Settings are operator overrides for one vendor, taken from the
// configuration file's per-connector block. Zero fields leave the
// vendor's defaults in place.
type Settings struct {
	// BaseURL overrides the vendor API base URL. It wins over the
	// vendor's environment variable override.
	BaseURL string

	// TokenEnv names an alternate environment variable to read the
	// vendor credential from.
	TokenEnv string

	// Timeout overrides the fixed per-request timeout.
	Timeout time.Duration
}

var (
	settingsMu sync.RWMutex
	settings   = map[string]Settings{}
)

// Configure installs operator settings for a vendor, returning a restore
// function. The server factory applies parsed config blocks here at
// startup; connectors pick them up on construction.
func Configure(vendor string, s Settings) func() {
	vendor = strings.ToLower(vendor)

	settingsMu.Lock()
	prev, had := settings[vendor]
	settings[vendor] = s
	settingsMu.Unlock()

	return func() {
		settingsMu.Lock()
		if had {
			settings[vendor] = prev
		} else {
			delete(settings, vendor)
		}
		settingsMu.Unlock()
	}
}

func settingsFor(vendor string) Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings[strings.ToLower(vendor)]
}
