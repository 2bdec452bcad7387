package dsl

import "github.com/searchfluent/elastic-data-api/types"

// AllIndexes addresses every index on the cluster when a query does not
// name one.
const AllIndexes = "_all"

// SearchRequest is a compiled query: the request body plus the routing
// metadata needed to address it.
type SearchRequest struct {
	Index string
	// Type is only set for pre-7.0 servers, whose search endpoints are
	// type-qualified.
	Type    string
	Body    types.Doc
	Options map[string]interface{}
}

// URL returns the path segments of the search endpoint for this request.
func (r *SearchRequest) URL() []string {
	if r.Type != "" {
		return []string{r.Index, r.Type, "_search"}
	}
	return []string{r.Index, "_search"}
}

// Builder assembles complete search requests out of compiled condition,
// sort and pass-through fragments.
type Builder struct {
	compiler *Compiler
	version  int
}

// NewBuilder returns a builder targeting the given server major version.
func NewBuilder(version int) *Builder {
	return &Builder{compiler: NewCompiler(version), version: version}
}

// Compiler returns the condition compiler the builder uses.
func (b *Builder) Compiler() *Compiler {
	return b.compiler
}

// Build compiles a query snapshot into a search request. Body keys are
// emitted only for the parts the query actually sets: the server treats
// key presence as opt-in, so absent parts must stay absent rather than
// appear as nulls.
func (b *Builder) Build(query Query) (*SearchRequest, error) {
	body := types.Doc{}

	if query.storedFields != nil {
		body["stored_fields"] = query.storedFields
	}
	if len(query.scriptFields) > 0 {
		body["script_fields"] = query.scriptFields
	}
	if len(query.runtimeMappings) > 0 {
		body["runtime_mappings"] = query.runtimeMappings
	}
	if query.fields != nil {
		body["fields"] = query.fields
	}
	if query.source != nil {
		body["_source"] = query.source
	}
	if query.limit != nil && *query.limit >= 0 {
		body["size"] = *query.limit
	}
	if query.offset > 0 {
		body["from"] = query.offset
	}
	if query.minScore != nil {
		body["min_score"] = *query.minScore
	}
	if query.explain {
		body["explain"] = true
	}

	filter, err := b.compiler.CompileCondition(query.where)
	if err != nil {
		return nil, err
	}
	if filter != nil {
		// The condition is a filter, not a scored query: the constant_score
		// envelope keeps matching from affecting relevance.
		filtered := types.Doc{"constant_score": types.Doc{"filter": filter}}
		if len(query.rawQuery) > 0 {
			body["query"] = types.Doc{"bool": types.Doc{"must": []interface{}{filtered, query.rawQuery}}}
		} else {
			body["query"] = filtered
		}
	} else if len(query.rawQuery) > 0 {
		body["query"] = query.rawQuery
	}

	if len(query.highlight) > 0 {
		body["highlight"] = query.highlight
	}
	if len(query.aggregations) > 0 {
		body["aggregations"] = query.aggregations
	}
	if len(query.stats) > 0 {
		body["stats"] = query.stats
	}
	if len(query.suggest) > 0 {
		body["suggest"] = query.suggest
	}
	if len(query.postFilter) > 0 {
		body["post_filter"] = query.postFilter
	}
	if len(query.collapse) > 0 {
		body["collapse"] = query.collapse
	}

	if sort := b.compiler.CompileSort(query.orderBy); len(sort) > 0 {
		body["sort"] = sort
	}

	options := make(map[string]interface{}, len(query.options)+1)
	for name, value := range query.options {
		options[name] = value
	}
	if query.timeout != "" {
		options["timeout"] = query.timeout
	}

	index := query.index
	if index == "" {
		index = AllIndexes
	}

	request := &SearchRequest{
		Index:   index,
		Body:    body,
		Options: options,
	}
	if b.version < 7 {
		request.Type = query.docType
	}
	return request, nil
}
