package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searchfluent/elastic-data-api/types"
)

func TestCompileSortPreservesOrder(t *testing.T) {
	compiler := NewCompiler(7)

	sorts := compiler.CompileSort([]SortField{
		{Field: "a", Direction: SortDesc},
		{Field: "b", Direction: SortAsc},
	})

	assert.Equal(t, []interface{}{
		types.Doc{"a": "desc"},
		types.Doc{"b": "asc"},
	}, sorts)
}

func TestCompileSortDefaultsToAscending(t *testing.T) {
	compiler := NewCompiler(7)

	sorts := compiler.CompileSort([]SortField{{Field: "created_at"}})
	assert.Equal(t, []interface{}{types.Doc{"created_at": "asc"}}, sorts)
}

func TestCompileSortEmptyInput(t *testing.T) {
	compiler := NewCompiler(7)

	assert.Nil(t, compiler.CompileSort(nil))
	assert.Nil(t, compiler.CompileSort([]SortField{}))
}

func TestCompileSortExtendedSpecPassesThrough(t *testing.T) {
	compiler := NewCompiler(7)

	spec := types.Doc{"order": "asc", "missing": "_last"}
	sorts := compiler.CompileSort([]SortField{{Field: "price", Spec: spec}})
	assert.Equal(t, []interface{}{types.Doc{"price": spec}}, sorts)
}

func TestCompileSortRewritesIdentifierPerDialect(t *testing.T) {
	orders := []SortField{{Field: "_id", Direction: SortDesc}}

	sorts := NewCompiler(6).CompileSort(orders)
	assert.Equal(t, []interface{}{types.Doc{"_uid": "desc"}}, sorts)

	sorts = NewCompiler(7).CompileSort(orders)
	assert.Equal(t, []interface{}{types.Doc{"_id": "desc"}}, sorts)
}
