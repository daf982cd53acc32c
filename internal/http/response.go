package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// WriteJson writes body as-is with the given status code. The catalog
// endpoints use it for their bare-array responses and fixed error shapes.
func WriteJson(c context.Context, w http.ResponseWriter, statusCode int, body interface{}) {
	logger := zerolog.Ctx(c).With().Str("tag", "WriteJson").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msgf("failed encoding response body with error=%s", err.Error())
	}
}

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	logger := zerolog.Ctx(c).With().Str("tag", "WriteJsonResponse").Logger()

	w.Header().Add(HeaderContentType, HeaderValueJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"]; ok {
		w.WriteHeader(v.(int))
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msgf("failed encoding response body with error=%s", err.Error())
	}
}
