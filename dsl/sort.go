package dsl

import "github.com/searchfluent/elastic-data-api/types"

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortField is one entry of an order-by list. When Spec is set it is an
// extended sort specification (script sort, missing-value handling,
// nested sort) and is emitted verbatim; otherwise Direction applies, with
// ascending as the fallback.
type SortField struct {
	Field     string
	Direction string
	Spec      types.Doc
}

// CompileSort translates an order-by list into a DSL sort array. Output
// order strictly matches input order; an empty list compiles to nil,
// leaving the server's relevance-score default in place.
func (c *Compiler) CompileSort(orders []SortField) []interface{} {
	if len(orders) == 0 {
		return nil
	}

	sorts := make([]interface{}, 0, len(orders))
	for _, order := range orders {
		field := order.Field
		if field == "_id" && c.version < 7 {
			field = legacyIDField
		}

		if order.Spec != nil {
			sorts = append(sorts, types.Doc{field: order.Spec})
			continue
		}

		direction := order.Direction
		if direction != SortDesc {
			direction = SortAsc
		}
		sorts = append(sorts, types.Doc{field: direction})
	}
	return sorts
}
