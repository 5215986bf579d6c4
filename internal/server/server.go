package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"kidpoints/internal/config"
	"kidpoints/internal/handler"
	appmw "kidpoints/internal/middleware"
	"kidpoints/internal/repository"
	"kidpoints/internal/service"
)

type Server struct {
	e     *echo.Echo
	sha   string
	build string
}

func New(db *gorm.DB, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	pointRepo := repository.NewPointRepository(db)
	activityRepo := repository.NewActivityRequestRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	userSvc := service.NewUserService(userRepo, pointRepo)
	pointSvc := service.NewPointService(pointRepo, userRepo)
	activitySvc := service.NewActivityService(activityRepo, userRepo)

	authHandler := handler.NewAuthHandler(authSvc, userSvc)
	userHandler := handler.NewUserHandler(userSvc)
	pointHandler := handler.NewPointHandler(pointSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)

	authMw := appmw.NewAuthMiddleware(authSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	api.POST("/register", userHandler.Register)
	api.POST("/login", authHandler.Login)

	authed := api.Group("", authMw.RequireAuth)
	authed.GET("/me", authHandler.Me)
	authed.GET("/children", userHandler.ListChildren)
	authed.POST("/children", userHandler.CreateChild)
	authed.GET("/children/credentials", userHandler.Credentials)
	authed.DELETE("/children/:id", userHandler.DeleteChild)
	authed.GET("/points", pointHandler.List)
	authed.POST("/points", pointHandler.Create)
	authed.DELETE("/points", pointHandler.Delete)
	authed.GET("/activity-requests", activityHandler.List)
	authed.POST("/activity-requests", activityHandler.Submit)
	authed.POST("/activity-requests/:id/review", activityHandler.Review)

	return &Server{e: e, sha: sha, build: buildTime}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
