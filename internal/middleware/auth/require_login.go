package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/karsis/b2b-eshop/internal/models"
)

// RequireLogin validates the access token (Authorization bearer header or
// accessToken cookie) and places the caller's identity into the echo
// context for handlers to pick up via CurrentUser.
func RequireLogin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if err := setUserContext(c, claims); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie.Value
	}
	return ""
}

func setUserContext(c echo.Context, claims jwt.MapClaims) error {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return fmt.Errorf("missing sub claim")
	}
	companyID, ok := claims["company_id"].(float64)
	if !ok {
		return fmt.Errorf("missing company_id claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return fmt.Errorf("missing role claim")
	}

	c.Set("userID", uint(sub))
	c.Set("companyID", uint(companyID))
	c.Set("role", role)
	return nil
}

// CurrentUser rebuilds the authenticated caller from the request context.
func CurrentUser(c echo.Context) (models.AuthUser, error) {
	userID, ok := c.Get("userID").(uint)
	if !ok {
		return models.AuthUser{}, fmt.Errorf("unauthenticated request")
	}
	companyID, _ := c.Get("companyID").(uint)
	role, _ := c.Get("role").(string)
	return models.AuthUser{UserID: userID, CompanyID: companyID, Role: role}, nil
}
