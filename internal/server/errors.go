package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/deck-generator/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
// A bad request is the caller's fault; classification and generation failures
// mean the upstream model could not be used, so they map to 502.
func HTTPStatus(err error) int {
	var perr *pipeline.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case pipeline.CodeInvalidRequest:
			return http.StatusBadRequest
		case pipeline.CodeClassificationFailed, pipeline.CodeGenerationFailed:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}
