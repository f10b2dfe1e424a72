package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fintrackhq/fintrack-api/internal/api/middleware"
	"github.com/fintrackhq/fintrack-api/internal/core/domain"
	"github.com/fintrackhq/fintrack-api/internal/core/ports"
)

// session extracts the claims injected by the perimeter gate. A missing value
// means the gate did not run or rejected the request; fail closed with 401.
func session(c echo.Context) (*ports.SessionClaims, error) {
	claims, _ := c.Get(middleware.SessionContextKey).(*ports.SessionClaims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// caller returns the requesting account as an owner identifier.
func caller(c echo.Context) (domain.OwnerID, error) {
	claims, err := session(c)
	if err != nil {
		return "", err
	}
	return claims.Owner(), nil
}

// listQuery parses the common page/limit/search query parameters.
func listQuery(c echo.Context) ports.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.ListQuery{
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	}
}

// dateRange parses optional from/to query parameters. Both RFC 3339 and
// plain dates (2006-01-02) are accepted; unparsable values are ignored.
func dateRange(c echo.Context) ports.DateRange {
	return ports.DateRange{
		From: parseDate(c.QueryParam("from")),
		To:   parseDate(c.QueryParam("to")),
	}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
