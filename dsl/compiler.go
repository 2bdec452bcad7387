package dsl

import (
	"reflect"

	"github.com/searchfluent/elastic-data-api/types"
)

// legacyIDField is the internal field that pre-7.0 servers require in
// place of _id for sorting and range comparisons.
const legacyIDField = "_uid"

// Compiler lowers condition trees into Query DSL fragments. It is a pure
// translator: it never mutates its input and holds no state besides the
// server dialect version, so a single instance is safe for concurrent
// use.
type Compiler struct {
	version int
}

// NewCompiler returns a compiler targeting the given server major
// version.
func NewCompiler(version int) *Compiler {
	return &Compiler{version: version}
}

// CompileCondition lowers a condition tree into a DSL filter fragment. A
// nil or empty condition compiles to nil, meaning no filter at all.
func (c *Compiler) CompileCondition(condition Condition) (types.Doc, error) {
	switch cond := condition.(type) {
	case nil:
		return nil, nil
	case *Hash:
		return c.compileHash(cond)
	case *Op:
		return c.compileOp(cond)
	default:
		return nil, NewMalformedConditionError("unknown condition type %T", condition)
	}
}

func (c *Compiler) compileOp(op *Op) (types.Doc, error) {
	switch op.Operator {
	case OpNot:
		return c.compileNot(op)
	case OpAnd, OpOr:
		return c.compileBool(op)
	case OpBetween, OpNotBetween:
		return c.compileBetween(op)
	case OpIn, OpNotIn:
		return c.compileIn(op)
	case OpLt, OpLtSymbol, OpLte, OpLteSymbol, OpGt, OpGtSymbol, OpGte, OpGteSymbol:
		return c.compileHalfBoundedRange(op)
	case OpMatch, OpMatchPhrase:
		return c.compileMatch(op)
	case OpLike, OpNotLike, OpOrLike, OpOrNotLike:
		return nil, NewUnsupportedOperatorError(op.Operator)
	default:
		return nil, NewUnsupportedOperatorError(op.Operator)
	}
}

func (c *Compiler) compileHash(hash *Hash) (types.Doc, error) {
	if hash.Len() == 0 {
		return nil, nil
	}

	parts := make([]interface{}, 0, hash.Len())
	missingFields := make([]interface{}, 0)

	for _, name := range hash.names {
		value := hash.values[name]
		if name == "_id" {
			if value == nil {
				// There is no null identifier.
				parts = append(parts, matchNothing())
			} else {
				parts = append(parts, types.Doc{"ids": types.Doc{"values": valueList(value)}})
			}
			continue
		}

		switch {
		case value == nil:
			missingFields = append(missingFields, existsClause(name))
		case isList(value):
			parts = append(parts, types.Doc{"terms": types.Doc{name: value}})
		default:
			parts = append(parts, types.Doc{"term": types.Doc{name: value}})
		}
	}

	boolClause := types.Doc{"must": parts}
	if len(missingFields) > 0 {
		boolClause["must_not"] = missingFields
	}
	return types.Doc{"bool": boolClause}, nil
}

func (c *Compiler) compileNot(op *Op) (types.Doc, error) {
	if len(op.Operands) != 1 {
		return nil, NewMalformedConditionError("operator %q requires exactly one operand", op.Operator)
	}

	operand, err := c.compileOperand(op.Operands[0])
	if err != nil {
		return nil, err
	}
	if operand == nil {
		return nil, nil
	}
	return types.Doc{"bool": types.Doc{"must_not": operand}}, nil
}

func (c *Compiler) compileBool(op *Op) (types.Doc, error) {
	parts := make([]interface{}, 0, len(op.Operands))
	for _, operand := range op.Operands {
		part, err := c.compileOperand(operand)
		if err != nil {
			return nil, err
		}
		if len(part) > 0 {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return nil, nil
	}

	clause := "must"
	if op.Operator == OpOr {
		clause = "should"
	}
	return types.Doc{"bool": types.Doc{clause: parts}}, nil
}

func (c *Compiler) compileBetween(op *Op) (types.Doc, error) {
	if len(op.Operands) != 3 {
		return nil, NewMalformedConditionError("operator %q requires three operands", op.Operator)
	}
	field, ok := op.Operands[0].(string)
	if !ok {
		return nil, NewMalformedConditionError("operator %q requires a column name as its first operand", op.Operator)
	}
	if field == "_id" {
		// Identifiers are not range-comparable.
		return nil, NewMalformedConditionError("operator %q is not supported for the _id field", op.Operator)
	}

	filter := types.Doc{"range": types.Doc{field: types.Doc{
		"gte": op.Operands[1],
		"lte": op.Operands[2],
	}}}
	if op.Operator == OpNotBetween {
		filter = types.Doc{"bool": types.Doc{"must_not": filter}}
	}
	return filter, nil
}

func (c *Compiler) compileIn(op *Op) (types.Doc, error) {
	if len(op.Operands) != 2 {
		return nil, NewMalformedConditionError("operator %q requires two operands", op.Operator)
	}

	field, err := singleColumn(op)
	if err != nil {
		return nil, err
	}

	values := valueList(op.Operands[1])
	nonNull := make([]interface{}, 0, len(values))
	canBeNull := false
	for _, value := range values {
		if value == nil {
			canBeNull = true
			continue
		}
		nonNull = append(nonNull, value)
	}

	var filter types.Doc
	switch {
	case len(nonNull) == 0 && !canBeNull:
		// IN over the empty set matches nothing; the negated form matches
		// everything, modeled as an absent filter.
		if op.Operator == OpNotIn {
			return nil, nil
		}
		return matchNothing(), nil
	case len(nonNull) == 0 && field == "_id":
		// Only null identifiers requested, and there is no null identifier.
		filter = matchNothing()
	case len(nonNull) == 0:
		filter = types.Doc{"bool": types.Doc{"must_not": []interface{}{existsClause(field)}}}
	default:
		if field == "_id" {
			filter = types.Doc{"ids": types.Doc{"values": nonNull}}
		} else {
			filter = types.Doc{"terms": types.Doc{field: nonNull}}
		}
		if canBeNull {
			filter = types.Doc{"bool": types.Doc{"should": []interface{}{
				filter,
				types.Doc{"bool": types.Doc{"must_not": []interface{}{existsClause(field)}}},
			}}}
		}
	}

	if op.Operator == OpNotIn {
		filter = types.Doc{"bool": types.Doc{"must_not": []interface{}{filter}}}
	}
	return filter, nil
}

func (c *Compiler) compileHalfBoundedRange(op *Op) (types.Doc, error) {
	if len(op.Operands) != 2 {
		return nil, NewMalformedConditionError("operator %q requires two operands", op.Operator)
	}
	field, ok := op.Operands[0].(string)
	if !ok {
		return nil, NewMalformedConditionError("operator %q requires a column name as its first operand", op.Operator)
	}

	var bound string
	switch op.Operator {
	case OpLt, OpLtSymbol:
		bound = "lt"
	case OpLte, OpLteSymbol:
		bound = "lte"
	case OpGt, OpGtSymbol:
		bound = "gt"
	case OpGte, OpGteSymbol:
		bound = "gte"
	}

	if field == "_id" && c.version < 7 {
		field = legacyIDField
	}
	return types.Doc{"range": types.Doc{field: types.Doc{bound: op.Operands[1]}}}, nil
}

func (c *Compiler) compileMatch(op *Op) (types.Doc, error) {
	if len(op.Operands) != 2 {
		return nil, NewMalformedConditionError("operator %q requires two operands", op.Operator)
	}
	field, ok := op.Operands[0].(string)
	if !ok {
		return nil, NewMalformedConditionError("operator %q requires a column name as its first operand", op.Operator)
	}
	return types.Doc{string(op.Operator): types.Doc{field: op.Operands[1]}}, nil
}

func (c *Compiler) compileOperand(operand interface{}) (types.Doc, error) {
	switch v := operand.(type) {
	case nil:
		return nil, nil
	case Condition:
		return c.CompileCondition(v)
	case types.Doc:
		// Raw pass-through fragment supplied by the caller.
		return v, nil
	default:
		return nil, NewMalformedConditionError("operand of type %T is not a condition", operand)
	}
}

func singleColumn(op *Op) (string, error) {
	switch column := op.Operands[0].(type) {
	case string:
		return column, nil
	case []string:
		if len(column) == 0 {
			return "", NewMalformedConditionError("operator %q requires at least one column", op.Operator)
		}
		if len(column) > 1 {
			return "", NewCompositeKeyUnsupportedError(op.Operator, column)
		}
		return column[0], nil
	default:
		return "", NewMalformedConditionError("operator %q requires a column name as its first operand", op.Operator)
	}
}

// matchNothing is the tautological-false filter: a clause guaranteed to
// match zero documents.
func matchNothing() types.Doc {
	return types.Doc{"bool": types.Doc{"must_not": []interface{}{
		types.Doc{"match_all": types.Doc{}},
	}}}
}

func existsClause(field string) types.Doc {
	return types.Doc{"exists": types.Doc{"field": field}}
}

func isList(value interface{}) bool {
	kind := reflect.ValueOf(value).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func valueList(value interface{}) []interface{} {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []interface{}{value}
	}
	values := make([]interface{}, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values
}
