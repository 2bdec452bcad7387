package dsl

import "github.com/searchfluent/elastic-data-api/types"

// Query is the fluent search specification. Setters take the query by
// value and return an updated copy, so a base query can be shared and
// extended from multiple goroutines without aliasing hazards; Build
// compiles from the snapshot it receives.
//
// A query with nothing set is valid: it matches all documents of all
// indexes with the server's default result shape (the server caps results
// at its default page size of 10 when no limit is set).
type Query struct {
	index   string
	docType string

	where      Condition
	rawQuery   types.Doc
	postFilter types.Doc

	orderBy []SortField
	limit   *int
	offset  int

	storedFields    []string
	scriptFields    types.Doc
	runtimeMappings types.Doc
	fields          []string
	source          interface{}

	minScore *float64
	explain  bool

	highlight    types.Doc
	aggregations types.Doc
	stats        []string
	suggest      types.Doc
	collapse     types.Doc

	timeout string
	options map[string]interface{}
}

func NewQuery() Query {
	return Query{}
}

// Index addresses the query at one index (or an index pattern). Unset
// means all indexes.
func (q Query) Index(index string) Query {
	q.index = index
	return q
}

// Type sets the mapping type for pre-7.0 servers. 7.x+ servers dropped
// mapping types and the builder ignores it for them.
func (q Query) Type(docType string) Query {
	q.docType = docType
	return q
}

// Where replaces the filter condition.
func (q Query) Where(condition Condition) Query {
	q.where = condition
	return q
}

// AndWhere conjoins a condition with the existing filter.
func (q Query) AndWhere(condition Condition) Query {
	if q.where == nil {
		q.where = condition
	} else {
		q.where = And(q.where, condition)
	}
	return q
}

// OrWhere disjoins a condition with the existing filter.
func (q Query) OrWhere(condition Condition) Query {
	if q.where == nil {
		q.where = condition
	} else {
		q.where = Or(q.where, condition)
	}
	return q
}

// RawQuery attaches a pre-built query fragment that is merged verbatim
// alongside the compiled condition.
func (q Query) RawQuery(query types.Doc) Query {
	q.rawQuery = query
	return q
}

// PostFilter attaches a pre-built post_filter fragment, applied after
// aggregations are computed.
func (q Query) PostFilter(filter types.Doc) Query {
	q.postFilter = filter
	return q
}

// OrderBy replaces the sort list.
func (q Query) OrderBy(orders ...SortField) Query {
	q.orderBy = orders
	return q
}

// AddOrderBy appends one sort entry.
func (q Query) AddOrderBy(field, direction string) Query {
	orders := make([]SortField, len(q.orderBy), len(q.orderBy)+1)
	copy(orders, q.orderBy)
	q.orderBy = append(orders, SortField{Field: field, Direction: direction})
	return q
}

// Limit caps the number of returned rows. Zero is meaningful: it fetches
// counts and aggregations without rows.
func (q Query) Limit(limit int) Query {
	q.limit = &limit
	return q
}

// Offset skips rows from the start of the result.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// StoredFields selects stored fields to return with each hit.
func (q Query) StoredFields(fields ...string) Query {
	q.storedFields = fields
	return q
}

// ScriptFields attaches computed fields.
func (q Query) ScriptFields(fields types.Doc) Query {
	q.scriptFields = fields
	return q
}

// RuntimeMappings defines fields evaluated at search time.
func (q Query) RuntimeMappings(mappings types.Doc) Query {
	q.runtimeMappings = mappings
	return q
}

// Fields selects fields to fetch through the fields option.
func (q Query) Fields(fields ...string) Query {
	q.fields = fields
	return q
}

// Source controls _source filtering: a bool, a field list or a filter
// spec, emitted verbatim.
func (q Query) Source(source interface{}) Query {
	q.source = source
	return q
}

// MinScore drops hits scoring below the threshold.
func (q Query) MinScore(score float64) Query {
	q.minScore = &score
	return q
}

// Explain requests per-hit score explanations.
func (q Query) Explain(explain bool) Query {
	q.explain = explain
	return q
}

// Highlight attaches a highlight fragment, emitted verbatim.
func (q Query) Highlight(highlight types.Doc) Query {
	q.highlight = highlight
	return q
}

// Aggregate adds one named aggregation fragment, emitted verbatim.
func (q Query) Aggregate(name string, aggregation types.Doc) Query {
	aggregations := make(types.Doc, len(q.aggregations)+1)
	for k, v := range q.aggregations {
		aggregations[k] = v
	}
	aggregations[name] = aggregation
	q.aggregations = aggregations
	return q
}

// Stats associates the query with statistics groups.
func (q Query) Stats(groups ...string) Query {
	q.stats = groups
	return q
}

// Suggest adds one named suggester fragment, emitted verbatim.
func (q Query) Suggest(name string, suggester types.Doc) Query {
	suggest := make(types.Doc, len(q.suggest)+1)
	for k, v := range q.suggest {
		suggest[k] = v
	}
	suggest[name] = suggester
	q.suggest = suggest
	return q
}

// Collapse folds hits on a field, emitted verbatim.
func (q Query) Collapse(collapse types.Doc) Query {
	q.collapse = collapse
	return q
}

// Timeout bounds server-side execution, e.g. "5s". It travels as a URL
// option; the compiler imposes no deadline of its own.
func (q Query) Timeout(timeout string) Query {
	q.timeout = timeout
	return q
}

// Option sets one URL option forwarded to the transport.
func (q Query) Option(name string, value interface{}) Query {
	options := make(map[string]interface{}, len(q.options)+1)
	for k, v := range q.options {
		options[k] = v
	}
	options[name] = value
	q.options = options
	return q
}
