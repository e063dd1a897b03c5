package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/app"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key holding the Application.
const AppContextKey = "greenhaven.app"

type WebServer struct {
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	appctx *app.Application
}

var server *WebServer

// Init builds the HTTP server: public /api group and a JWT-guarded /api
// group for admin operations. Request bodies are capped globally so
// oversized payloads fail with 413 before reaching any handler.
func Init(appctx *app.Application) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("4M"))
	e.Use(requestLogger)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appctx)
			return next(c)
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	pub := e.Group("/api")
	api := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appctx.Config().Web.JwtSecret),
	}))

	server = &WebServer{root: e, pub: pub, api: api, appctx: appctx}
	return server
}

// errorHandler renders every unhandled error as a JSON {error} body.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	message := "internal server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("http error", zap.String("path", c.Path()), zap.Error(err))
	}
	_ = c.JSON(code, map[string]interface{}{"error": message})
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		zap.L().Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}

// Listen starts the HTTP server and blocks.
func Listen() error {
	cfg := server.appctx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("webserver listening on %s", addr)
	return server.root.Start(addr)
}

// Shutdown stops the HTTP server gracefully.
func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

// Public route registration.

func PubGET(path string, h echo.HandlerFunc) {
	server.pub.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// Admin (JWT-guarded) route registration.

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
