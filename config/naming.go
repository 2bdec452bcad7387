package config

import "github.com/iancoleman/strcase"

// NamingConvention maps caller-facing names onto index and document field
// names.
type NamingConvention interface {
	ToFieldName(name string) string
	ToIndexName(name string) string
}

type snakeCaseNaming struct {
}

// NewSnakeCaseNaming maps camelCase request names to the snake_case
// convention most mappings use.
func NewSnakeCaseNaming() NamingConvention {
	return &snakeCaseNaming{}
}

func (n *snakeCaseNaming) ToFieldName(name string) string {
	return strcase.ToSnake(name)
}

func (n *snakeCaseNaming) ToIndexName(name string) string {
	return strcase.ToSnake(name)
}

type identityNaming struct {
}

// NewIdentityNaming leaves names untouched, for clusters whose mappings
// already use the caller's convention.
func NewIdentityNaming() NamingConvention {
	return &identityNaming{}
}

func (n *identityNaming) ToFieldName(name string) string {
	return name
}

func (n *identityNaming) ToIndexName(name string) string {
	return name
}
