package config

import "time"

// EngineConfig holds pattern set and extractor settings.
type EngineConfig struct {
	ExtractURLsWithoutProtocol bool
	CheckURLOverlap            bool
	MatchTimeout               time.Duration
	NormalizeNFC               bool
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port              int
	RateLimitRPS      float64
	RateLimitBurst    int
	MaxTextLength     int
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// EngineCfg returns the extraction engine configuration.
func (c *Config) EngineCfg() EngineConfig {
	return EngineConfig{
		ExtractURLsWithoutProtocol: c.ExtractURLsWithoutProtocol,
		CheckURLOverlap:            c.CheckURLOverlap,
		MatchTimeout:               c.MatchTimeout,
		NormalizeNFC:               c.NormalizeNFC,
	}
}

// ServerCfg returns the HTTP server configuration.
func (c *Config) ServerCfg() ServerConfig {
	return ServerConfig{
		Port:              c.HTTPPort,
		RateLimitRPS:      c.RateLimitRPS,
		RateLimitBurst:    c.RateLimitBurst,
		MaxTextLength:     c.MaxTextLength,
		ReadHeaderTimeout: c.ReadHeaderTimeout,
		ShutdownTimeout:   c.ShutdownTimeout,
	}
}
