package api

import "time"

// Config holds handler tunables.
type Config struct {
	// CourtesyDelay is the flat pause between IP discovery and geolocation
	// in the self lookup.
	CourtesyDelay time.Duration `env:"COURTESY_DELAY" envDefault:"500ms"`
}
