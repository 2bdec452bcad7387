package testutil

import (
	"encoding/json"
	"testing"

	"github.com/searchfluent/elastic-data-api/types"
)

// Doc parses a JSON literal into a document, matching the shape response
// bodies have after wire decoding.
func Doc(t *testing.T, literal string) types.Doc {
	t.Helper()
	var doc types.Doc
	if err := json.Unmarshal([]byte(literal), &doc); err != nil {
		t.Fatalf("invalid fixture %q: %v", literal, err)
	}
	return doc
}
