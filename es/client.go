package es

import (
	"net/http"

	"github.com/searchfluent/elastic-data-api/dsl"
	"github.com/searchfluent/elastic-data-api/log"
	"github.com/searchfluent/elastic-data-api/types"
)

// Client runs fluent queries against a cluster. Construct with NewClient;
// the zero value is not usable.
type Client struct {
	session Session
	builder *dsl.Builder
	version int
	logger  log.Logger
}

// NewClient wraps a session for a server with the given major version.
// The version drives both the compiled dialect and the endpoint shape.
func NewClient(session Session, version int, logger log.Logger) *Client {
	return &Client{
		session: session,
		builder: dsl.NewBuilder(version),
		version: version,
		logger:  logger,
	}
}

// Version returns the server major version the client targets.
func (c *Client) Version() int {
	return c.version
}

// Search compiles a query and executes it.
func (c *Client) Search(query dsl.Query) (*dsl.Result, error) {
	request, err := c.builder.Build(query)
	if err != nil {
		return nil, err
	}

	response, err := c.session.Execute(http.MethodPost, request.URL(), request.Options, request.Body)
	if err != nil {
		return nil, err
	}
	return dsl.NewResult(response.Body), nil
}

// Count returns the number of documents matching a query without
// fetching rows. 7.x+ servers cap the reported total unless accurate
// tracking is requested explicitly.
func (c *Client) Count(query dsl.Query) (int, error) {
	query = query.Limit(0)
	if c.version >= 7 {
		query = query.Option("track_total_hits", "true")
	}

	result, err := c.Search(query)
	if err != nil {
		return 0, err
	}
	return result.Total(), nil
}

// Exists reports whether a query matches at least one document.
func (c *Client) Exists(query dsl.Query) (bool, error) {
	result, err := c.Search(query.Limit(1))
	if err != nil {
		return false, err
	}
	return !result.Empty(), nil
}

// Get fetches a single document by identifier. It returns nil without an
// error when the document does not exist.
func (c *Client) Get(index, docType, id string) (types.Doc, error) {
	response, err := c.session.Execute(http.MethodGet, c.documentURL(index, docType, id), nil, nil)
	if err != nil {
		return nil, err
	}
	if !response.Found() {
		return nil, nil
	}
	return response.Body, nil
}

func (c *Client) documentURL(index, docType, id string) []string {
	if c.version < 7 {
		return []string{index, docType, id}
	}
	return []string{index, "_doc", id}
}
