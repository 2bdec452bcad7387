package dsl

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"

	"github.com/searchfluent/elastic-data-api/types"
)

// Result wraps a decoded search response body and exposes the pieces a
// record-population layer needs. A nil body (the transport's not-found
// sentinel) behaves as an empty result, never as an error.
type Result struct {
	raw types.Doc
}

func NewResult(raw types.Doc) *Result {
	return &Result{raw: raw}
}

// Raw returns the decoded response body as received.
func (r *Result) Raw() types.Doc {
	return r.raw
}

// Total returns the number of matching documents. Servers report it
// either as a bare integer or, from 7.0 on when total-hit tracking is
// requested, as an object carrying a value field; both shapes normalize
// to a plain int. A missing field means zero.
func (r *Result) Total() int {
	hits, ok := asDoc(r.raw["hits"])
	if !ok {
		return 0
	}

	total := hits["total"]
	if object, ok := asDoc(total); ok {
		if value, ok := asInt(object["value"]); ok {
			return value
		}
		return 0
	}
	if value, ok := asInt(total); ok {
		return value
	}
	return 0
}

// Rows returns the hit list in response order. Each row keeps the
// server's native hit shape (_id, _score, _source, fields).
func (r *Result) Rows() []types.Doc {
	hits, ok := asDoc(r.raw["hits"])
	if !ok {
		return nil
	}

	list := asList(hits["hits"])
	rows := make([]types.Doc, 0, len(list))
	for _, item := range list {
		if row, ok := asDoc(item); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// Empty reports whether the response carries no hits. Zero hits means "no
// match", not a failure.
func (r *Result) Empty() bool {
	return len(r.Rows()) == 0
}

// KeyFunc computes an index key for a row.
type KeyFunc func(row types.Doc) interface{}

// RowsByField indexes rows by the value of one column. When keys collide
// the last row wins.
func (r *Result) RowsByField(field string) map[interface{}]types.Doc {
	return r.RowsByFunc(func(row types.Doc) interface{} {
		return ColumnValue(row, field)
	})
}

// RowsByFunc indexes rows by a computed key. When keys collide the last
// row wins.
func (r *Result) RowsByFunc(fn KeyFunc) map[interface{}]types.Doc {
	rows := r.Rows()
	indexed := make(map[interface{}]types.Doc, len(rows))
	for _, row := range rows {
		indexed[fn(row)] = row
	}
	return indexed
}

// Column projects one column across all rows.
func (r *Result) Column(field string) []interface{} {
	rows := r.Rows()
	values := make([]interface{}, len(rows))
	for i, row := range rows {
		values[i] = ColumnValue(row, field)
	}
	return values
}

// Scalar returns the column value of the first row, or nil for an empty
// result.
func (r *Result) Scalar(field string) interface{} {
	rows := r.Rows()
	if len(rows) == 0 {
		return nil
	}
	return ColumnValue(rows[0], field)
}

// ColumnValue resolves one column from a hit. Resolution order: the _id
// pseudo-field, then the stored fields projection (the server always
// returns field values as arrays, so the first element wins), then
// _source. A field absent from all three resolves to nil.
func ColumnValue(row types.Doc, field string) interface{} {
	if field == "_id" {
		return row["_id"]
	}

	if fields, ok := asDoc(row["fields"]); ok {
		if value, present := fields[field]; present {
			if list := asList(value); len(list) > 0 {
				return list[0]
			}
			return nil
		}
	}

	if source, ok := asDoc(row["_source"]); ok {
		if value, present := source[field]; present {
			return value
		}
	}
	return nil
}

// DecodeSource decodes a hit's _source into a caller-provided struct,
// honoring json field tags.
func DecodeSource(row types.Doc, out interface{}) error {
	source, _ := asDoc(row["_source"])
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]interface{}(source))
}

func asDoc(value interface{}) (types.Doc, bool) {
	switch doc := value.(type) {
	case types.Doc:
		return doc, true
	case map[string]interface{}:
		return types.Doc(doc), true
	}
	return nil, false
}

func asList(value interface{}) []interface{} {
	switch list := value.(type) {
	case []interface{}:
		return list
	case []types.Doc:
		items := make([]interface{}, len(list))
		for i, item := range list {
			items[i] = item
		}
		return items
	}
	return nil
}

func asInt(value interface{}) (int, bool) {
	switch number := value.(type) {
	case int:
		return number, true
	case int64:
		return int(number), true
	case float64:
		return int(number), true
	case json.Number:
		if parsed, err := number.Int64(); err == nil {
			return int(parsed), true
		}
	}
	return 0, false
}
