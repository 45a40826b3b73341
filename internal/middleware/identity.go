package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// clientKey identifies the caller for rate limiting: the user id when
// the request passed JWTAuth, otherwise the client IP.
func clientKey(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		return fmt.Sprintf("u:%v", v)
	}
	return "ip:" + c.RealIP()
}
