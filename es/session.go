package es

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/searchfluent/elastic-data-api/log"
	"github.com/searchfluent/elastic-data-api/types"
)

// Response is a decoded transport response. Body stays nil for requests
// answered with 404, so callers can treat missing documents and indexes
// as zero rows rather than failures.
type Response struct {
	StatusCode int
	Body       types.Doc
	Raw        []byte
}

// Found reports whether the request hit an existing document or index.
func (r *Response) Found() bool {
	return r.StatusCode != http.StatusNotFound
}

// Session executes a single HTTP request against the cluster and decodes
// the JSON response. Implementations must be safe for concurrent use.
type Session interface {
	Execute(method string, url []string, options map[string]interface{}, body types.Doc) (*Response, error)
}

type httpSession struct {
	hosts  []string
	next   uint64
	client *http.Client
	logger log.Logger
}

// NewSession returns a Session over net/http. Requests rotate through the
// given hosts; node discovery, authentication and retries are left to the
// deployment in front of the cluster.
func NewSession(hosts []string, timeout time.Duration, logger log.Logger) Session {
	trimmed := make([]string, len(hosts))
	for i, host := range hosts {
		trimmed[i] = strings.TrimSuffix(host, "/")
	}
	return &httpSession{
		hosts:  trimmed,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (s *httpSession) Execute(method string, pathSegments []string, options map[string]interface{}, body types.Doc) (*Response, error) {
	requestURL := s.host() + "/" + strings.Join(pathSegments, "/")
	if len(options) > 0 {
		values := url.Values{}
		for name, value := range options {
			values.Set(name, fmt.Sprintf("%v", value))
		}
		requestURL += "?" + values.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("unable to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequest(method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	s.logger.Debug("executing request", "method", method, "url", requestURL)

	response, err := s.client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	result := &Response{StatusCode: response.StatusCode, Raw: raw}
	if response.StatusCode == http.StatusNotFound {
		return result, nil
	}
	if response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("elasticsearch returned status %d: %s", response.StatusCode, raw)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result.Body); err != nil {
			return nil, fmt.Errorf("unable to decode response body: %w", err)
		}
	}
	return result, nil
}

func (s *httpSession) host() string {
	index := atomic.AddUint64(&s.next, 1)
	return s.hosts[int(index%uint64(len(s.hosts)))]
}
