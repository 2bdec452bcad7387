package config

import (
	"time"

	"github.com/searchfluent/elastic-data-api/log"
)

// Config is the read side of endpoint configuration.
type Config interface {
	Hosts() []string
	Version() int
	RequestTimeout() time.Duration
	Naming() NamingConvention
	Logger() log.Logger
}
