//////////////////////////////////////////////////////////////////////////////
//
// Config contains configuration data for Sink and Source endpoints
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

const (
	DefaultChannel      = "default"
	DefaultJitterBuffer = 50
)

type Config struct {
	// Channel name to match sink and source endpoints.
	Channel string

	// Number of buffers to keep in the jitter buffer between sink and
	// source. Zero means unbounded.
	JitterBuffer uint

	// Registry to rendezvous in. Nil means DefaultRegistry.
	Registry *Registry
}

func DefaultConfig() Config {
	return Config{
		Channel:      DefaultChannel,
		JitterBuffer: DefaultJitterBuffer,
	}
}

func (c Config) registry() *Registry {
	if c.Registry == nil {
		return DefaultRegistry
	}
	return c.Registry
}
