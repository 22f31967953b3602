package http

import (
	"errors"
	"net/http"

	"moving-progress/internal/dashboard"
	"moving-progress/internal/optimistic"
	pkgErrors "moving-progress/pkg/errors"
)

var (
	errInvalidSectionParam = pkgErrors.NewHTTPError(http.StatusBadRequest, "section_id must be an integer")
	errMissingTaskID       = pkgErrors.NewHTTPError(http.StatusBadRequest, "task_id is required")
	errInvalidCategory     = pkgErrors.NewHTTPError(http.StatusBadRequest, "unknown category")
	errInvalidSource       = pkgErrors.NewHTTPError(http.StatusBadRequest, "unknown source")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Order matters: a rolled-back mutation may wrap a more specific cause.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrTaskNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, dashboard.ErrTaskNotFound.Error())
	case errors.Is(err, dashboard.ErrNotLoaded):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, dashboard.ErrNotLoaded.Error())
	case errors.Is(err, dashboard.ErrJournalUnavailable):
		return pkgErrors.NewHTTPError(http.StatusNotFound, dashboard.ErrJournalUnavailable.Error())
	case errors.Is(err, dashboard.ErrNotConfirmed):
		return pkgErrors.NewHTTPError(http.StatusConflict, dashboard.ErrNotConfirmed.Error())
	case errors.Is(err, dashboard.ErrPriorityFull):
		return pkgErrors.NewHTTPError(http.StatusConflict, dashboard.ErrPriorityFull.Error())
	case errors.Is(err, dashboard.ErrEmptyTitle),
		errors.Is(err, dashboard.ErrInvalidSection),
		errors.Is(err, dashboard.ErrEmptyMoveDetails),
		errors.Is(err, dashboard.ErrReservedField),
		errors.Is(err, dashboard.ErrEmptyTaskIDs):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, optimistic.ErrRolledBack):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "the server did not accept the change; it was undone")
	case errors.Is(err, optimistic.ErrAborted):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, "request cancelled while another change was in progress")
	case errors.Is(err, dashboard.ErrLoadFailed):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, "failed to load dashboard data from the backend")
	default:
		return pkgErrors.ErrInternalServerError
	}
}
