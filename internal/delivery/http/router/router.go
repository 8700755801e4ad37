// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"diary/internal/delivery/http/middleware"
	"diary/internal/delivery/http/router/handler"
	"diary/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	AnswerHandler  *handler.AnswerHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	answerHandler  *handler.AnswerHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		catalogHandler: params.CatalogHandler,
		answerHandler:  params.AnswerHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application. The general,
// meal and sleep questionnaires repeat one uniform pattern under their own
// prefixes; only the sleep family exposes answer deletion.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account routes
	userGroup := e.Group("/user")
	{
		userGroup.POST("/", r.userHandler.RegisterUser)
		userGroup.POST("/token/", r.userHandler.Login)
		userGroup.POST("/token/refresh/", r.userHandler.RefreshToken)
		userGroup.POST("/logout/", r.userHandler.Logout, r.authMiddleware.Authenticate)
		userGroup.GET("/me/", r.userHandler.GetProfile, r.authMiddleware.Authenticate)
		userGroup.PATCH("/me/", r.userHandler.UpdateProfile, r.authMiddleware.Authenticate)
	}

	// Vegetable lookup table
	e.GET("/vegetables/", r.catalogHandler.ListVegetables, r.authMiddleware.Authenticate)

	r.registerFamily(e, "", entity.FamilyGeneral, false)
	r.registerFamily(e, "/meal", entity.FamilyMeal, false)
	r.registerFamily(e, "/sleep", entity.FamilySleep, true)
}

// registerFamily mounts one questionnaire family's question and answer
// routes under the given prefix.
func (r *router) registerFamily(e *echo.Echo, prefix string, family entity.QuestionFamily, withDelete bool) {
	questionGroup := e.Group(prefix+"/questions", r.authMiddleware.Authenticate)
	{
		questionGroup.GET("/", r.catalogHandler.ListQuestions(family))
	}

	answerGroup := e.Group(prefix+"/answers", r.authMiddleware.Authenticate)
	{
		answerGroup.GET("/", r.answerHandler.List(family))
		answerGroup.POST("/", r.answerHandler.Submit(family))
		answerGroup.GET("/yesterday/", r.answerHandler.ListYesterday(family))
		answerGroup.GET("/week/", r.answerHandler.ListWeek(family))
		answerGroup.PATCH("/:id/", r.answerHandler.Update(family))
		if withDelete {
			answerGroup.DELETE("/:id/", r.answerHandler.Delete(family))
		}
	}
}
