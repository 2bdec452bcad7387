package dsl

// Operator identifies a condition operator tag. The set is closed: the
// compiler dispatches on it exhaustively and rejects anything else.
type Operator string

const (
	OpNot        Operator = "not"
	OpAnd        Operator = "and"
	OpOr         Operator = "or"
	OpBetween    Operator = "between"
	OpNotBetween Operator = "not between"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not in"

	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"

	// Symbolic aliases for the half-bounded range operators.
	OpLtSymbol  Operator = "<"
	OpLteSymbol Operator = "<="
	OpGtSymbol  Operator = ">"
	OpGteSymbol Operator = ">="

	OpMatch       Operator = "match"
	OpMatchPhrase Operator = "match_phrase"

	// Registered for parity with SQL-style builders. Elasticsearch has no
	// like query, so the compiler rejects these; use match or match_phrase.
	OpLike      Operator = "like"
	OpNotLike   Operator = "not like"
	OpOrLike    Operator = "or like"
	OpOrNotLike Operator = "or not like"
)

// Condition is a node of a filter condition tree. A nil Condition means
// "no filter".
type Condition interface {
	condition()
}

// Hash is the hash-format condition: a conjunction of per-field
// predicates. A scalar value means equality, a slice means set membership
// and nil means "the field does not exist". Field order is preserved so
// compiled fragments serialize reproducibly.
type Hash struct {
	names  []string
	values map[string]interface{}
}

func NewHash() *Hash {
	return &Hash{values: make(map[string]interface{})}
}

// Set adds or replaces one field predicate, keeping first-set order.
func (h *Hash) Set(field string, value interface{}) *Hash {
	if _, present := h.values[field]; !present {
		h.names = append(h.names, field)
	}
	h.values[field] = value
	return h
}

// Len returns the number of field predicates.
func (h *Hash) Len() int {
	return len(h.names)
}

func (h *Hash) condition() {}

// Op is the operator-format condition: an operator tag applied to an
// ordered operand list. Operand types depend on the operator: boolean
// composition takes sub-conditions, the others take column names and
// values.
type Op struct {
	Operator Operator
	Operands []interface{}
}

func NewOp(operator Operator, operands ...interface{}) *Op {
	return &Op{Operator: operator, Operands: operands}
}

func (o *Op) condition() {}

// And combines conditions so that all of them must hold.
func And(conditions ...Condition) *Op {
	return NewOp(OpAnd, asOperands(conditions)...)
}

// Or combines conditions so that at least one of them must hold.
func Or(conditions ...Condition) *Op {
	return NewOp(OpOr, asOperands(conditions)...)
}

// Not negates a condition.
func Not(condition Condition) *Op {
	return NewOp(OpNot, condition)
}

// Between constrains a field to the inclusive [low, high] interval.
func Between(field string, low, high interface{}) *Op {
	return NewOp(OpBetween, field, low, high)
}

// NotBetween constrains a field to lie outside the inclusive [low, high]
// interval.
func NotBetween(field string, low, high interface{}) *Op {
	return NewOp(OpNotBetween, field, low, high)
}

// In constrains a field to a value set. A nil value in the set matches
// documents missing the field.
func In(field string, values ...interface{}) *Op {
	return NewOp(OpIn, field, values)
}

// NotIn excludes a value set.
func NotIn(field string, values ...interface{}) *Op {
	return NewOp(OpNotIn, field, values)
}

// InColumns is the column-list form of In. A single-column list behaves
// like In; multi-column membership tests have no Query DSL equivalent and
// fail at compile time.
func InColumns(fields []string, values ...interface{}) *Op {
	return NewOp(OpIn, fields, values)
}

// Lt, Lte, Gt and Gte are the half-bounded range conditions.

func Lt(field string, value interface{}) *Op {
	return NewOp(OpLt, field, value)
}

func Lte(field string, value interface{}) *Op {
	return NewOp(OpLte, field, value)
}

func Gt(field string, value interface{}) *Op {
	return NewOp(OpGt, field, value)
}

func Gte(field string, value interface{}) *Op {
	return NewOp(OpGte, field, value)
}

// Match performs full-text matching of query text against an analyzed
// field.
func Match(field string, text interface{}) *Op {
	return NewOp(OpMatch, field, text)
}

// MatchPhrase matches the query text as an exact phrase.
func MatchPhrase(field string, text interface{}) *Op {
	return NewOp(OpMatchPhrase, field, text)
}

func asOperands(conditions []Condition) []interface{} {
	operands := make([]interface{}, len(conditions))
	for i, condition := range conditions {
		operands[i] = condition
	}
	return operands
}
