package pkg

import (
	"buildcost/internal/app/config"
	"buildcost/internal/app/handler"
	"buildcost/internal/app/middleware"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler     *handler.APIHandler
	AuthHandler *handler.AuthHandler
	Auth        *middleware.AuthMiddleware
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler, authHandler *handler.AuthHandler, auth *middleware.AuthMiddleware) *Application {
	return &Application{
		Config:      c,
		Router:      r,
		Handler:     h,
		AuthHandler: authHandler,
		Auth:        auth,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	a.Handler.RegisterAPIRoutes(a.Router, a.Auth)
	a.AuthHandler.RegisterAuthRoutes(a.Router, a.Auth)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
