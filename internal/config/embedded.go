package config

// EmbeddedTMDBToken is injected at build time via ldflags and serves as the
// default bearer token. Environment variables or the config file override it.
//
// Build with:
//
//	go build -ldflags "-X 'github.com/marquee/marquee/internal/config.EmbeddedTMDBToken=xxx'"
var EmbeddedTMDBToken string
