package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threadcount/fulfillment/core"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`              // user-level status message
	ErrorText  string `json:"error,omitempty"`     // application-level error message, for debugging
	ItemID     int64  `json:"itemId,omitempty"`    // the item a stock error refers to
	Available  int64  `json:"available,omitempty"` // offerable units when stock was short
}

func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, StatusText: "Resource not found."}
var ErrForbidden = &ErrResponse{HTTPStatusCode: http.StatusForbidden, StatusText: "Forbidden."}
var ErrInternalServer = &ErrResponse{
	HTTPStatusCode: http.StatusInternalServerError,
	StatusText:     "Internal server error.",
	ErrorText:      "An internal server error has occurred.",
}

// RenderError maps domain errors onto their HTTP shapes. Anything not in the
// taxonomy is a 500.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	var insufficient *core.InsufficientStockError
	var transition *core.InvalidTransitionError

	switch {
	case errors.As(err, &insufficient):
		Render(w, r, &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusConflict,
			StatusText:     "Insufficient stock.",
			ErrorText:      insufficient.Error(),
			ItemID:         insufficient.ItemID,
			Available:      insufficient.Available,
		})
	case errors.As(err, &transition):
		Render(w, r, &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusConflict,
			StatusText:     "Invalid transition.",
			ErrorText:      transition.Error(),
		})
	case errors.Is(err, core.ErrEmptyCart):
		Render(w, r, ErrInvalidRequest(core.ErrEmptyCart))
	case errors.Is(err, core.ErrNotOwner):
		Render(w, r, ErrForbidden)
	case errors.Is(err, core.ErrNotFound):
		Render(w, r, ErrNotFound)
	default:
		log.Err(err).Send()
		Render(w, r, ErrInternalServer)
	}
}
