package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/searchfluent/elastic-data-api/config"
	"github.com/searchfluent/elastic-data-api/dsl"
	"github.com/searchfluent/elastic-data-api/es"
	resterrors "github.com/searchfluent/elastic-data-api/rest/errors"
	"github.com/searchfluent/elastic-data-api/rest/models"
	"github.com/searchfluent/elastic-data-api/rest/translator"
	"github.com/searchfluent/elastic-data-api/types"
)

// jsonResult provides a basic root object in order to avoid using a scalar at root level.
type jsonResult struct {
	Total int         `json:"total"`
	Rows  []types.Doc `json:"rows"`
}

type jsonError struct {
	Error string `json:"error"`
}

// ApiRouter gets the router for the REST search API.
func ApiRouter(client *es.Client, naming config.NamingConvention) *httprouter.Router {
	router := httprouter.New()
	router.GET("/", index)
	router.GET("/health", health)
	router.POST("/v1/indexes/:index/search", searchHandler(client, naming))
	return router
}

func searchHandler(client *es.Client, naming config.NamingConvention) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		var model models.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "unable to decode request body")
			return
		}

		apiTranslator := translator.APITranslator{
			Index:  params.ByName("index"),
			Naming: naming,
		}
		query, err := apiTranslator.ToQuery(model)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err.Error())
			return
		}

		result, err := client.Search(query)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err.Error())
			return
		}

		writeResponse(w, &jsonResult{Total: result.Total(), Rows: result.Rows()})
	}
}

// statusFor maps compiler and validation failures to 400; everything else
// is a server-side failure.
func statusFor(err error) int {
	var badRequest *resterrors.BadRequestError
	var malformed *dsl.MalformedConditionError
	var unsupported *dsl.UnsupportedOperatorError
	var composite *dsl.CompositeKeyUnsupportedError

	switch {
	case errors.As(err, &badRequest),
		errors.As(err, &malformed),
		errors.As(err, &unsupported),
		errors.As(err, &composite):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func writeErrorResponse(w http.ResponseWriter, errorCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(errorCode)
	_ = json.NewEncoder(w).Encode(&jsonError{Error: errorMsg})
}

func health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeResponse(w, map[string]string{"status": "up"})
}

func index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := fmt.Fprint(w, "Welcome to the search API!\n"); err != nil {
		panic(err)
	}
}
