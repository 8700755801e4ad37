package handler

import (
	"log/slog"
	"net/http"

	"diary/internal/delivery/http/response"
	"diary/internal/domain/entity"
	"diary/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the read-only reference catalogs.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListQuestions returns a handler serving one family's question catalog.
func (h *CatalogHandler) ListQuestions(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		output, err := h.uc.ListQuestions(c.Request().Context(), family)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "")
	}
}

// ListVegetables returns the vegetable lookup table.
func (h *CatalogHandler) ListVegetables(c echo.Context) error {
	output, err := h.uc.ListVegetables(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
