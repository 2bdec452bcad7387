package translator

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/searchfluent/elastic-data-api/config"
	"github.com/searchfluent/elastic-data-api/dsl"
	e "github.com/searchfluent/elastic-data-api/rest/errors"
	m "github.com/searchfluent/elastic-data-api/rest/models"
)

var (
	validate *validator.Validate
	trans    ut.Translator
)

func init() {
	validate = validator.New()

	uni := ut.New(en.New(), en.New())
	trans, _ = uni.GetTranslator("en")

	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	_ = validate.RegisterTranslation("required", trans, func(ut ut.Translator) error {
		return ut.Add("required", "{0} is a required field", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required", fe.Field())
		return t
	})

	_ = validate.RegisterTranslation("oneof", trans, func(ut ut.Translator) error {
		return ut.Add("oneof", "{0} must be one of the supported values", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("oneof", fe.Field())
		return t
	})
}

// APITranslator turns REST search models into fluent queries.
type APITranslator struct {
	Index  string `validate:"required"`
	Naming config.NamingConvention
}

// ToQuery validates a search model and translates it into a query
// addressed at the translator's index.
func (a APITranslator) ToQuery(model m.SearchRequest) (dsl.Query, error) {
	query := dsl.NewQuery()

	if err := validate.Struct(a); err != nil {
		return query, e.TranslateValidatorError(err, trans)
	}
	if err := validate.Struct(model); err != nil {
		return query, e.TranslateValidatorError(err, trans)
	}

	query = query.Index(a.indexName(a.Index))

	for _, filter := range model.Filters {
		condition, err := toCondition(a.fieldName(filter.ColumnName), filter)
		if err != nil {
			return query, err
		}
		query = query.AndWhere(condition)
	}

	for _, order := range model.OrderBy {
		query = query.AddOrderBy(a.fieldName(order.Column), order.Order)
	}

	if model.PageSize > 0 {
		query = query.Limit(model.PageSize)
	}
	if model.From > 0 {
		query = query.Offset(model.From)
	}
	if len(model.SourceFields) > 0 {
		fields := make([]string, len(model.SourceFields))
		for i, field := range model.SourceFields {
			fields[i] = a.fieldName(field)
		}
		query = query.Source(fields)
	}

	return query, nil
}

func toCondition(column string, filter m.Filter) (dsl.Condition, error) {
	switch filter.Operator {
	case "eq":
		value, err := singleValue(filter)
		if err != nil {
			return nil, err
		}
		return dsl.NewHash().Set(column, value), nil
	case "gt", "gte", "lt", "lte":
		value, err := singleValue(filter)
		if err != nil {
			return nil, err
		}
		return dsl.NewOp(dsl.Operator(filter.Operator), column, value), nil
	case "in":
		return dsl.In(column, filter.Value...), nil
	case "notIn":
		return dsl.NotIn(column, filter.Value...), nil
	case "between", "notBetween":
		if len(filter.Value) != 2 {
			return nil, e.NewBadRequestError("a " + filter.Operator + " filter requires exactly two values")
		}
		if filter.Operator == "between" {
			return dsl.Between(column, filter.Value[0], filter.Value[1]), nil
		}
		return dsl.NotBetween(column, filter.Value[0], filter.Value[1]), nil
	case "match", "matchPhrase":
		value, err := singleValue(filter)
		if err != nil {
			return nil, err
		}
		if filter.Operator == "match" {
			return dsl.Match(column, value), nil
		}
		return dsl.MatchPhrase(column, value), nil
	default:
		// Unreachable for validated models; kept for direct callers.
		return nil, e.NewBadRequestError("operator " + filter.Operator + " is not supported")
	}
}

func singleValue(filter m.Filter) (interface{}, error) {
	if len(filter.Value) != 1 {
		return nil, e.NewBadRequestError("a " + filter.Operator + " filter requires exactly one value")
	}
	return filter.Value[0], nil
}

func (a APITranslator) fieldName(name string) string {
	if a.Naming == nil {
		return name
	}
	return a.Naming.ToFieldName(name)
}

func (a APITranslator) indexName(name string) string {
	if a.Naming == nil {
		return name
	}
	return a.Naming.ToIndexName(name)
}
