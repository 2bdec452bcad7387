package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchfluent/elastic-data-api/types"
)

func TestBuildEmptyQuery(t *testing.T) {
	request, err := NewBuilder(7).Build(NewQuery())
	require.NoError(t, err)

	// Matches all documents with the server's default result shape.
	assert.Equal(t, types.Doc{}, request.Body)
	assert.Equal(t, AllIndexes, request.Index)
	assert.Equal(t, "", request.Type)
	assert.Equal(t, []string{"_all", "_search"}, request.URL())
}

func TestBuildRouting(t *testing.T) {
	query := NewQuery().Index("accounts").Type("account")

	request, err := NewBuilder(6).Build(query)
	require.NoError(t, err)
	assert.Equal(t, "accounts", request.Index)
	assert.Equal(t, "account", request.Type)
	assert.Equal(t, []string{"accounts", "account", "_search"}, request.URL())

	// 7.x+ endpoints are no longer type-qualified.
	request, err = NewBuilder(7).Build(query)
	require.NoError(t, err)
	assert.Equal(t, "", request.Type)
	assert.Equal(t, []string{"accounts", "_search"}, request.URL())
}

func TestBuildWrapsConditionInConstantScore(t *testing.T) {
	query := NewQuery().Where(NewHash().Set("status", "active"))

	request, err := NewBuilder(7).Build(query)
	require.NoError(t, err)

	assert.Equal(t, types.Doc{"constant_score": types.Doc{"filter": types.Doc{
		"bool": types.Doc{"must": []interface{}{
			types.Doc{"term": types.Doc{"status": "active"}},
		}},
	}}}, request.Body["query"])
}

func TestBuildMergesConditionWithRawQuery(t *testing.T) {
	raw := types.Doc{"match": types.Doc{"title": "dsl"}}
	query := NewQuery().
		Where(NewHash().Set("status", "active")).
		RawQuery(raw)

	request, err := NewBuilder(7).Build(query)
	require.NoError(t, err)

	boolQuery := request.Body["query"].(types.Doc)["bool"].(types.Doc)
	must := boolQuery["must"].([]interface{})
	require.Len(t, must, 2)
	assert.Contains(t, must[0].(types.Doc), "constant_score")
	assert.Equal(t, raw, must[1])
}

func TestBuildRawQueryAloneIsVerbatim(t *testing.T) {
	raw := types.Doc{"match": types.Doc{"title": "dsl"}}

	request, err := NewBuilder(7).Build(NewQuery().RawQuery(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, request.Body["query"])
}

func TestBuildBodyParts(t *testing.T) {
	query := NewQuery().
		Index("accounts").
		StoredFields("name").
		ScriptFields(types.Doc{"doubled": types.Doc{"script": "doc['n'].value * 2"}}).
		RuntimeMappings(types.Doc{"day": types.Doc{"type": "keyword"}}).
		Fields("name", "day").
		Source([]string{"name"}).
		Limit(25).
		Offset(50).
		MinScore(0.5).
		Explain(true).
		Highlight(types.Doc{"fields": types.Doc{"name": types.Doc{}}}).
		Aggregate("by_status", types.Doc{"terms": types.Doc{"field": "status"}}).
		Stats("group1").
		Suggest("spelling", types.Doc{"term": types.Doc{"field": "name"}}).
		PostFilter(types.Doc{"term": types.Doc{"color": "red"}}).
		Collapse(types.Doc{"field": "account_id"}).
		AddOrderBy("age", SortDesc)

	request, err := NewBuilder(7).Build(query)
	require.NoError(t, err)

	body := request.Body
	assert.Equal(t, []string{"name"}, body["stored_fields"])
	assert.Equal(t, types.Doc{"doubled": types.Doc{"script": "doc['n'].value * 2"}}, body["script_fields"])
	assert.Equal(t, types.Doc{"day": types.Doc{"type": "keyword"}}, body["runtime_mappings"])
	assert.Equal(t, []string{"name", "day"}, body["fields"])
	assert.Equal(t, []string{"name"}, body["_source"])
	assert.Equal(t, 25, body["size"])
	assert.Equal(t, 50, body["from"])
	assert.Equal(t, 0.5, body["min_score"])
	assert.Equal(t, true, body["explain"])
	assert.Equal(t, types.Doc{"fields": types.Doc{"name": types.Doc{}}}, body["highlight"])
	assert.Equal(t, types.Doc{"by_status": types.Doc{"terms": types.Doc{"field": "status"}}}, body["aggregations"])
	assert.Equal(t, []string{"group1"}, body["stats"])
	assert.Equal(t, types.Doc{"spelling": types.Doc{"term": types.Doc{"field": "name"}}}, body["suggest"])
	assert.Equal(t, types.Doc{"term": types.Doc{"color": "red"}}, body["post_filter"])
	assert.Equal(t, types.Doc{"field": "account_id"}, body["collapse"])
	assert.Equal(t, []interface{}{types.Doc{"age": "desc"}}, body["sort"])
}

func TestBuildOmitsUnsetParts(t *testing.T) {
	request, err := NewBuilder(7).Build(NewQuery().Index("accounts").Limit(10))
	require.NoError(t, err)

	body := request.Body
	assert.Equal(t, 10, body["size"])
	for _, key := range []string{
		"stored_fields", "script_fields", "runtime_mappings", "fields",
		"_source", "from", "min_score", "explain", "query", "highlight",
		"aggregations", "stats", "suggest", "post_filter", "collapse", "sort",
	} {
		assert.NotContains(t, body, key)
	}
}

func TestBuildZeroLimitIsEmitted(t *testing.T) {
	request, err := NewBuilder(7).Build(NewQuery().Limit(0))
	require.NoError(t, err)
	assert.Equal(t, 0, request.Body["size"])
}

func TestBuildZeroOffsetIsOmitted(t *testing.T) {
	request, err := NewBuilder(7).Build(NewQuery().Offset(0))
	require.NoError(t, err)
	assert.NotContains(t, request.Body, "from")
}

func TestBuildFoldsTimeoutIntoOptions(t *testing.T) {
	query := NewQuery().Option("routing", "user1").Timeout("5s")

	request, err := NewBuilder(7).Build(query)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"routing": "user1",
		"timeout": "5s",
	}, request.Options)
}

func TestBuildPropagatesCompilerErrors(t *testing.T) {
	query := NewQuery().Where(NewOp(OpLike, "name", "abc"))

	_, err := NewBuilder(7).Build(query)
	var unsupported *UnsupportedOperatorError
	assert.True(t, errors.As(err, &unsupported))
}

func TestQuerySettersDoNotAliasState(t *testing.T) {
	base := NewQuery().Index("accounts").Option("routing", "user1")

	narrowed := base.AndWhere(NewHash().Set("status", "active")).Option("preference", "_local")

	baseRequest, err := NewBuilder(7).Build(base)
	require.NoError(t, err)
	narrowedRequest, err := NewBuilder(7).Build(narrowed)
	require.NoError(t, err)

	assert.NotContains(t, baseRequest.Body, "query")
	assert.Contains(t, narrowedRequest.Body, "query")
	assert.Equal(t, map[string]interface{}{"routing": "user1"}, baseRequest.Options)
	assert.Equal(t, map[string]interface{}{"routing": "user1", "preference": "_local"}, narrowedRequest.Options)
}
