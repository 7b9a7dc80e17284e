package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/models"
	"github.com/Skotchmaster/book_service/internal/repo"
	"github.com/Skotchmaster/book_service/internal/transport"
)

const publishedDateLayout = "2006-01-02"

type BookService struct {
	Repo repo.GormRepo
}

func (s *BookService) GetBooks(ctx context.Context) ([]models.Book, error) {
	return s.Repo.GetBooks(ctx)
}

func (s *BookService) GetUserBooks(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	return s.Repo.GetUserBooks(ctx, userUID)
}

func (s *BookService) GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "book"}
		}
		return nil, err
	}
	return book, nil
}

func (s *BookService) CreateBook(ctx context.Context, req transport.CreateBookRequest, userUID uuid.UUID) (*models.Book, error) {
	if req.Title == "" || req.Author == "" {
		return nil, ErrValidation
	}
	publishedDate, err := time.Parse(publishedDateLayout, req.PublishedDate)
	if err != nil {
		return nil, ErrValidation
	}

	book := models.Book{
		UID:           uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedDate: publishedDate,
		PageCount:     req.PageCount,
		Language:      req.Language,
		UserUID:       userUID,
	}
	if err := s.Repo.CreateBook(ctx, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *BookService) PatchBook(ctx context.Context, uid uuid.UUID, req transport.PatchBookRequest) (*models.Book, error) {
	book, err := s.GetBook(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
	}
	if req.Language != nil {
		book.Language = *req.Language
	}

	if err := s.Repo.SaveBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	if err := s.Repo.DeleteBook(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "book"}
		}
		return err
	}
	return nil
}

func (s *BookService) UserOwnsBook(ctx context.Context, bookUID, userUID uuid.UUID) (bool, error) {
	return s.Repo.UserOwnsBook(ctx, bookUID, userUID)
}
