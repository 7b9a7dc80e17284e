package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_service/internal/logging"
	"github.com/Skotchmaster/book_service/internal/service/search"
	"github.com/Skotchmaster/book_service/internal/util"
)

const bookIndex = "books"

type SearchHTTP struct {
	ES *elasticsearch.Client
}

func (h *SearchHTTP) SearchBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search_books")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	if h.ES == nil {
		l.Warn("search_failed", "status", 503, "reason", "search backend not configured")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, books, err := search.Search(ctx, h.ES, bookIndex, q, from, limit)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search books")
	}

	l.Info("search_success", "query", q, "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": books,
		"meta": map[string]any{
			"page":     page,
			"size":     limit,
			"total":    total,
			"has_prev": page > 1,
			"has_next": int64(from+limit) < total,
		},
	})
}
