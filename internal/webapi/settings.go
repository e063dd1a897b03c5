package webapi

import (
	"net/http"

	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/admin/settings", getSettings)
	webserver.ApiPUT("/admin/settings", saveSettings)
}

func getSettings(c echo.Context) error {
	return ok(c, GetApp(c).ConfigMgr().Storefront())
}

func saveSettings(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", nil)
	}
	if err := GetApp(c).SaveSettings(payload); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save settings", nil)
	}
	audit(c, "settings:save", "updated storefront settings")
	return ok(c, GetApp(c).ConfigMgr().Storefront())
}
