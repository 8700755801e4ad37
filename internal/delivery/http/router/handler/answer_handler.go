package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	deliverycontext "diary/internal/delivery/context"
	"diary/internal/delivery/http/response"
	"diary/internal/domain/entity"
	"diary/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AnswerHandler serves the owner-scoped answer endpoints. The same handler
// backs all three questionnaire families; the router binds each route group
// to its family.
type AnswerHandler struct {
	uc     usecase.AnswerUsecase
	logger *slog.Logger
}

// NewAnswerHandler is the constructor for AnswerHandler, injected by Fx.
func NewAnswerHandler(uc usecase.AnswerUsecase, logger *slog.Logger) *AnswerHandler {
	return &AnswerHandler{
		uc:     uc,
		logger: logger,
	}
}

func answerID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Wrap(err, "invalid answer id")
	}

	return uint(id), nil
}

// Submit returns a handler recording a new answer in one family.
func (h *AnswerHandler) Submit(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		var input *usecase.SubmitAnswerInput
		if err := c.Bind(&input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid answer input")
		}
		if err := c.Validate(input); err != nil {
			return errors.WithStack(err)
		}

		output, err := h.uc.Submit(c.Request().Context(), userID, family, input)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusCreated, output, "Answer recorded successfully")
	}
}

// List returns a handler listing the caller's answers in one family.
func (h *AnswerHandler) List(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		output, err := h.uc.List(c.Request().Context(), userID, family)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "")
	}
}

// Update returns a handler patching one of the caller's answers.
func (h *AnswerHandler) Update(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		id, err := answerID(c)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid answer id")
		}

		var input *usecase.UpdateAnswerInput
		if err := c.Bind(&input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid answer input")
		}
		if err := c.Validate(input); err != nil {
			return errors.WithStack(err)
		}

		output, err := h.uc.Update(c.Request().Context(), userID, family, id, input)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "Answer updated successfully")
	}
}

// Delete returns a handler removing one of the caller's answers.
func (h *AnswerHandler) Delete(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		id, err := answerID(c)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid answer id")
		}

		if err := h.uc.Delete(c.Request().Context(), userID, family, id); err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, map[string]string{"message": "Answer deleted"}, "Answer deleted successfully")
	}
}

// ListYesterday returns a handler listing the previous day's answers.
func (h *AnswerHandler) ListYesterday(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		output, err := h.uc.ListYesterday(c.Request().Context(), userID, family)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "")
	}
}

// ListWeek returns a handler listing the trailing week's meal answers.
func (h *AnswerHandler) ListWeek(family entity.QuestionFamily) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := deliverycontext.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "AUTH_REQUIRED", "Authentication required")
		}

		output, err := h.uc.ListWeek(c.Request().Context(), userID, family)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, output, "")
	}
}
