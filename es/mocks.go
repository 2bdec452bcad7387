package es

import (
	"github.com/stretchr/testify/mock"

	"github.com/searchfluent/elastic-data-api/types"
)

type SessionMock struct {
	mock.Mock
}

func (o *SessionMock) Execute(method string, url []string, options map[string]interface{}, body types.Doc) (*Response, error) {
	args := o.Called(method, url, options, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}
