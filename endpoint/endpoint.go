package endpoint

import (
	"errors"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/searchfluent/elastic-data-api/config"
	"github.com/searchfluent/elastic-data-api/es"
	"github.com/searchfluent/elastic-data-api/log"
	"github.com/searchfluent/elastic-data-api/rest"
)

const DefaultRequestTimeout = 30 * time.Second

// DefaultVersion is the server major version assumed when none is
// configured.
const DefaultVersion = 7

// SearchEndpointConfig carries everything needed to stand up a search
// endpoint against a cluster. It implements config.Config.
type SearchEndpointConfig struct {
	hosts   []string
	version int
	timeout time.Duration
	naming  config.NamingConvention
	logger  log.Logger
}

func (cfg SearchEndpointConfig) Hosts() []string {
	return cfg.hosts
}

func (cfg SearchEndpointConfig) Version() int {
	return cfg.version
}

func (cfg SearchEndpointConfig) RequestTimeout() time.Duration {
	return cfg.timeout
}

func (cfg SearchEndpointConfig) Naming() config.NamingConvention {
	return cfg.naming
}

func (cfg SearchEndpointConfig) Logger() log.Logger {
	return cfg.logger
}

func (cfg *SearchEndpointConfig) WithVersion(version int) *SearchEndpointConfig {
	cfg.version = version
	return cfg
}

func (cfg *SearchEndpointConfig) WithRequestTimeout(timeout time.Duration) *SearchEndpointConfig {
	cfg.timeout = timeout
	return cfg
}

func (cfg *SearchEndpointConfig) WithNaming(naming config.NamingConvention) *SearchEndpointConfig {
	cfg.naming = naming
	return cfg
}

// NewEndpointConfig builds a config with a production zap logger.
func NewEndpointConfig(hosts ...string) (*SearchEndpointConfig, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewEndpointConfigWithLogger(log.NewZapLogger(zapLogger), hosts...), nil
}

func NewEndpointConfigWithLogger(logger log.Logger, hosts ...string) *SearchEndpointConfig {
	return &SearchEndpointConfig{
		hosts:   hosts,
		version: DefaultVersion,
		timeout: DefaultRequestTimeout,
		naming:  config.NewIdentityNaming(),
		logger:  logger,
	}
}

// SearchEndpoint wires a client and the REST routes over it.
type SearchEndpoint struct {
	client *es.Client
	naming config.NamingConvention
	logger log.Logger
}

// NewEndpoint connects the cluster described by cfg and returns the
// endpoint.
func NewEndpoint(cfg config.Config) (*SearchEndpoint, error) {
	hosts := cfg.Hosts()
	if len(hosts) == 0 {
		return nil, errors.New("at least one host is required")
	}

	session := es.NewSession(hosts, cfg.RequestTimeout(), cfg.Logger())
	client := es.NewClient(session, cfg.Version(), cfg.Logger())
	return &SearchEndpoint{
		client: client,
		naming: cfg.Naming(),
		logger: cfg.Logger(),
	}, nil
}

// NewEndpoint connects the configured cluster and returns the endpoint.
func (cfg *SearchEndpointConfig) NewEndpoint() (*SearchEndpoint, error) {
	return NewEndpoint(cfg)
}

// Client returns the fluent query client behind the endpoint.
func (e *SearchEndpoint) Client() *es.Client {
	return e.client
}

// Router returns the REST API routes.
func (e *SearchEndpoint) Router() *httprouter.Router {
	return rest.ApiRouter(e.client, e.naming)
}
