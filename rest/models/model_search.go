package models

// SearchRequest is the JSON body of a REST search call.
type SearchRequest struct {
	Filters      []Filter `json:"filters,omitempty" validate:"dive"`
	OrderBy      []Order  `json:"orderBy,omitempty" validate:"dive"`
	PageSize     int      `json:"pageSize,omitempty" validate:"gte=0"`
	From         int      `json:"from,omitempty" validate:"gte=0"`
	SourceFields []string `json:"sourceFields,omitempty"`
}

// Filter is one predicate over a column. Value carries one element for
// the scalar operators, two for between and the whole set for in.
type Filter struct {
	ColumnName string        `json:"columnName" validate:"required"`
	Operator   string        `json:"operator" validate:"required,oneof=eq gt gte lt lte in notIn between notBetween match matchPhrase"`
	Value      []interface{} `json:"value"`
}

// Order is one entry of the sort list.
type Order struct {
	Column string `json:"column" validate:"required"`
	Order  string `json:"order" validate:"required,oneof=asc desc"`
}
