package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/transport"
)

type ReviewService struct {
	Repo repo.GormRepo
}

func (s *ReviewService) GetReviews(ctx context.Context) ([]models.Review, error) {
	return s.Repo.GetReviews(ctx)
}

func (s *ReviewService) GetUserReviews(ctx context.Context, userUID uuid.UUID) ([]models.Review, error) {
	return s.Repo.GetUserReviews(ctx, userUID)
}

func (s *ReviewService) AddReviewForBook(ctx context.Context, bookUID, userUID uuid.UUID, req transport.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 || req.ReviewText == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetBook(ctx, bookUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "book"}
		}
		return nil, err
	}

	review := models.Review{
		UID:        uuid.New(),
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
		BookUID:    bookUID,
		UserUID:    userUID,
	}
	if err := s.Repo.CreateReview(ctx, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) PatchReview(ctx context.Context, uid uuid.UUID, req transport.PatchReviewRequest) (*models.Review, error) {
	review, err := s.Repo.GetReview(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "review"}
		}
		return nil, err
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrValidation
		}
		review.Rating = *req.Rating
	}
	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}

	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, uid uuid.UUID) error {
	if err := s.Repo.DeleteReview(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "review"}
		}
		return err
	}
	return nil
}

func (s *ReviewService) UserOwnsReview(ctx context.Context, reviewUID, userUID uuid.UUID) (bool, error) {
	return s.Repo.UserOwnsReview(ctx, reviewUID, userUID)
}
