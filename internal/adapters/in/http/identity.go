package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	CustomerIDHeader = "X-Customer-ID"
	customerIDKey    = "customerID"
)

// RequireCustomer rejects requests without an authenticated customer id and
// stores the id for CustomerID.
func RequireCustomer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			customerID := strings.TrimSpace(c.Request().Header.Get(CustomerIDHeader))
			if customerID == "" {
				return respond(c, http.StatusUnauthorized, "Authentication required", nil)
			}
			c.Set(customerIDKey, customerID)
			return next(c)
		}
	}
}

// CustomerID returns the id stored by RequireCustomer.
func CustomerID(c echo.Context) string {
	id, _ := c.Get(customerIDKey).(string)
	return id
}
