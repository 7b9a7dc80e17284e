package httpserver

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/book_service/internal/logging"
	"github.com/Skotchmaster/book_service/internal/service"
	"github.com/Skotchmaster/book_service/internal/transport"
)

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) GetTags(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.get_tags")

	tags, err := h.Svc.GetTags(ctx)
	if err != nil {
		l.Error("get_tags_failed", "status", 500, "reason", "cannot list tags", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list tags")
	}

	return c.JSON(http.StatusOK, tags)
}

func (h *TagHTTP) CreateTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.create_tag")

	var req transport.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_tag_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tag, err := h.Svc.CreateTag(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_tag_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if service.IsAlreadyExists(err) {
			l.Warn("create_tag_failed", "status", 409, "reason", "tag exists", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "tag already exists")
		}
		l.Error("create_tag_failed", "status", 500, "reason", "cannot create tag", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create tag")
	}

	l.Info("create_tag_success", "tag_uid", tag.UID)
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHTTP) AddTagsToBook(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.add_tags_to_book")

	bookUID, err := uuid.Parse(c.Param("book_uid"))
	if err != nil {
		l.Warn("add_tags_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.AddTagsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_tags_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	book, err := h.Svc.AddTagsForBook(ctx, bookUID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_tags_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if service.IsNotFound(err) {
			l.Warn("add_tags_failed", "status", 404, "reason", "book not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("add_tags_failed", "status", 500, "reason", "cannot attach tags", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot attach tags")
	}

	l.Info("add_tags_success", "book_uid", bookUID)
	return c.JSON(http.StatusOK, book)
}

func (h *TagHTTP) PatchTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.patch_tag")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_tag_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_tag_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	tag, err := h.Svc.PatchTag(ctx, id, req)
	if err != nil {
		if service.IsNotFound(err) {
			l.Warn("patch_tag_failed", "status", 404, "reason", "tag not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("patch_tag_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if service.IsAlreadyExists(err) {
			l.Warn("patch_tag_failed", "status", 409, "reason", "tag exists", "error", err)
			return echo.NewHTTPError(http.StatusConflict, "tag already exists")
		}
		l.Error("patch_tag_failed", "status", 500, "reason", "cannot update tag", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update tag")
	}

	l.Info("patch_tag_success", "tag_uid", tag.UID)
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) DeleteTag(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "tag.delete_tag")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_tag_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteTag(ctx, id); err != nil {
		if service.IsNotFound(err) {
			l.Warn("delete_tag_failed", "status", 404, "reason", "tag not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		l.Error("delete_tag_failed", "status", 500, "reason", "cannot delete tag", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete tag")
	}

	l.Info("delete_tag_success", "tag_uid", id)
	return c.NoContent(http.StatusNoContent)
}
