package webapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/greenhaven-store/greenhaven/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const tokenTTL = 12 * time.Hour

var (
	errBadCredentials  = errors.New("invalid email or password")
	errAccountDisabled = errors.New("account is disabled")
)

func registerAuthRoutes() {
	webserver.PubPOST("/auth/login", login)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// verifyOperator checks the account state and the salted password hash.
func verifyOperator(opr domain.SysOpr, password string) error {
	if !strings.EqualFold(opr.Status, common.ENABLED) {
		return errAccountDisabled
	}
	if common.Sha256HashWithSalt(password, common.GetSecretSalt()) != opr.Password {
		return errBadCredentials
	}
	return nil
}

// issueToken signs the operator claims with the configured secret.
func issueToken(opr domain.SysOpr, secret string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   opr.Username,
		"uid":   opr.ID,
		"level": opr.Level,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// login verifies admin credentials server-side and issues a signed token.
// The client only persists the token; no credential check happens client
// side.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and password are required", nil)
	}

	var opr domain.SysOpr
	err := GetDB(c).
		Where("email = ? OR username = ?", payload.Email, payload.Email).
		First(&opr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operator", nil)
	}

	if err := verifyOperator(opr, payload.Password); err != nil {
		if errors.Is(err, errAccountDisabled) {
			return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled", nil)
		}
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}

	now := time.Now()
	signed, err := issueToken(opr, GetApp(c).Config().Web.JwtSecret, now)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	GetDB(c).Model(&domain.SysOpr{}).
		Where("id = ?", opr.ID).
		Updates(map[string]interface{}{"last_login": now})

	return ok(c, map[string]interface{}{
		"token": signed,
		"user": map[string]interface{}{
			"id":       opr.ID,
			"email":    opr.Email,
			"username": opr.Username,
			"level":    opr.Level,
		},
	})
}
