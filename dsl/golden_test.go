package dsl

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden snapshots of whole request bodies; run with -update after
// deliberate output changes.
func TestBuildGoldenBodies(t *testing.T) {
	items := []struct {
		name    string
		version int
		query   Query
	}{
		{
			name:    "filtered_paged",
			version: 7,
			query: NewQuery().
				Index("accounts").
				Where(And(NewHash().Set("status", "active"), Gte("age", 18))).
				AddOrderBy("age", SortDesc).
				Limit(25).
				Offset(50),
		},
		{
			name:    "legacy_identifier_sort",
			version: 6,
			query: NewQuery().
				Index("accounts").
				Type("account").
				Where(NewHash().Set("_id", []interface{}{"1", "2"})).
				AddOrderBy("_id", SortAsc),
		},
	}

	g := goldie.New(t)
	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			request, err := NewBuilder(item.version).Build(item.query)
			require.NoError(t, err)

			encoded, err := json.MarshalIndent(request.Body, "", "  ")
			require.NoError(t, err)
			g.Assert(t, item.name, encoded)
		})
	}
}
