package http

import (
	"moving-progress/internal/dashboard"
	"moving-progress/pkg/log"
)

type handler struct {
	l  log.Logger
	uc dashboard.UseCase
}

// New creates a new HTTP handler for the dashboard domain.
func New(l log.Logger, uc dashboard.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
