package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_service/internal/logging"
	authmw "github.com/Skotchmaster/book_service/internal/middleware/auth"
	"github.com/Skotchmaster/book_service/internal/service"
	"github.com/Skotchmaster/book_service/internal/transport"
)

type BookHTTP struct {
	Svc      *service.BookService
	Producer EventPublisher
}

func (h *BookHTTP) GetBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_books")

	books, err := h.Svc.GetBooks(ctx)
	if err != nil {
		l.Error("get_books_failed", "status", 500, "reason", "cannot list books", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list books")
	}

	return c.JSON(http.StatusOK, books)
}

func (h *BookHTTP) GetUserBooks(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_user_books")

	userUID, err := uuid.Parse(c.Param("user_uid"))
	if err != nil {
		l.Warn("get_user_books_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	books, err := h.Svc.GetUserBooks(ctx, userUID)
	if err != nil {
		l.Error("get_user_books_failed", "status", 500, "reason", "cannot list books", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list books")
	}

	return c.JSON(http.StatusOK, books)
}

func (h *BookHTTP) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.get_book")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_book_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	book, err := h.Svc.GetBook(ctx, id)
	if err != nil {
		if service.IsNotFound(err) {
			l.Warn("get_book_failed", "status", 404, "reason", "book not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("get_book_failed", "status", 500, "reason", "cannot get book", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get book")
	}

	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) CreateBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.create_book")

	var req transport.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	claims := authmw.ClaimsFromContext(c)
	userUID, err := uuid.Parse(claims.User.UserUID)
	if err != nil {
		l.Warn("create_book_failed", "status", 401, "reason", "bad subject in token", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	book, err := h.Svc.CreateBook(ctx, req, userUID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_book_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_book_failed", "status", 500, "reason", "cannot create book", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create book")
	}

	publishEvent(ctx, h.Producer, TopicBookEvents, "book.created", book.UID.String(), book)

	l.Info("create_book_success", "book_uid", book.UID)
	return c.JSON(http.StatusCreated, book)
}

func (h *BookHTTP) PatchBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.patch_book")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_book_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchBookRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_book_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book, err := h.Svc.PatchBook(ctx, id, req)
	if err != nil {
		if service.IsNotFound(err) {
			l.Warn("patch_book_failed", "status", 404, "reason", "book not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("patch_book_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("patch_book_failed", "status", 500, "reason", "cannot update book", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update book")
	}

	publishEvent(ctx, h.Producer, TopicBookEvents, "book.updated", book.UID.String(), book)

	l.Info("patch_book_success", "book_uid", book.UID)
	return c.JSON(http.StatusOK, book)
}

func (h *BookHTTP) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "book.delete_book")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_book_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteBook(ctx, id); err != nil {
		if service.IsNotFound(err) {
			l.Warn("delete_book_failed", "status", 404, "reason", "book not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("delete_book_failed", "status", 500, "reason", "cannot delete book", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete book")
	}

	publishEvent(ctx, h.Producer, TopicBookEvents, "book.deleted", id.String(), echo.Map{"uid": id})

	l.Info("delete_book_success", "book_uid", id)
	return c.NoContent(http.StatusNoContent)
}
