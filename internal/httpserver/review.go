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

type ReviewHTTP struct {
	Svc      *service.ReviewService
	Producer EventPublisher
}

func (h *ReviewHTTP) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_reviews")

	reviews, err := h.Svc.GetReviews(ctx)
	if err != nil {
		l.Error("get_reviews_failed", "status", 500, "reason", "cannot list reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reviews")
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) GetUserReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get_user_reviews")

	userUID, err := uuid.Parse(c.Param("user_uid"))
	if err != nil {
		l.Warn("get_user_reviews_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	reviews, err := h.Svc.GetUserReviews(ctx, userUID)
	if err != nil {
		l.Error("get_user_reviews_failed", "status", 500, "reason", "cannot list reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list reviews")
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.add_review")

	bookUID, err := uuid.Parse(c.Param("book_uid"))
	if err != nil {
		l.Warn("add_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	claims := authmw.ClaimsFromContext(c)
	userUID, err := uuid.Parse(claims.User.UserUID)
	if err != nil {
		l.Warn("add_review_failed", "status", 401, "reason", "bad subject in token", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}

	review, err := h.Svc.AddReviewForBook(ctx, bookUID, userUID, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_review_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if service.IsNotFound(err) {
			l.Warn("add_review_failed", "status", 404, "reason", "book not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		l.Error("add_review_failed", "status", 500, "reason", "cannot create review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create review")
	}

	publishEvent(ctx, h.Producer, TopicReviewEvents, "review.created", review.UID.String(), review)

	l.Info("add_review_success", "review_uid", review.UID)
	return c.JSON(http.StatusCreated, review)
}

func (h *ReviewHTTP) PatchReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.patch_review")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("patch_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.PatchReview(ctx, id, req)
	if err != nil {
		if service.IsNotFound(err) {
			l.Warn("patch_review_failed", "status", 404, "reason", "review not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("patch_review_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("patch_review_failed", "status", 500, "reason", "cannot update review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update review")
	}

	publishEvent(ctx, h.Producer, TopicReviewEvents, "review.updated", review.UID.String(), review)

	l.Info("patch_review_success", "review_uid", review.UID)
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete_review")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("delete_review_failed", "status", 400, "reason", "id is not a uuid", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a uuid")
	}

	if err := h.Svc.DeleteReview(ctx, id); err != nil {
		if service.IsNotFound(err) {
			l.Warn("delete_review_failed", "status", 404, "reason", "review not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "review not found")
		}
		l.Error("delete_review_failed", "status", 500, "reason", "cannot delete review", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete review")
	}

	publishEvent(ctx, h.Producer, TopicReviewEvents, "review.deleted", id.String(), echo.Map{"uid": id})

	l.Info("delete_review_success", "review_uid", id)
	return c.NoContent(http.StatusNoContent)
}
