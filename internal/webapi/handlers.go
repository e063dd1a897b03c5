// Package webapi implements the storefront HTTP surface: the public
// catalog/checkout endpoints and the JWT-guarded admin operations.
package webapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greenhaven-store/greenhaven/internal/app"
	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/greenhaven-store/greenhaven/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InitRouter registers all API routes. Call after webserver.Init.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerOrderRoutes()
	registerStatsRoutes()
	registerExportRoutes()
	registerSettingsRoutes()
}

// GetApp returns the application bound to the request context.
func GetApp(c echo.Context) *app.Application {
	return c.Get(webserver.AppContextKey).(*app.Application)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code string, message string, detail interface{}) error {
	body := map[string]interface{}{
		"error": message,
		"code":  code,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// oprName extracts the operator username from the request's JWT, empty for
// unauthenticated requests.
func oprName(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// audit records an admin action in the operator log.
func audit(c echo.Context, action, desc string) {
	log := domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := GetDB(c).Create(&log).Error; err != nil {
		zap.L().Error("failed to write operator log", zap.Error(err))
	}
}
