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

type TagService struct {
	Repo repo.GormRepo
}

func (s *TagService) GetTags(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.GetTags(ctx)
}

func (s *TagService) CreateTag(ctx context.Context, req transport.CreateTagRequest) (*models.Tag, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.GetTagByName(ctx, req.Name); err == nil {
		return nil, &AlreadyExistsError{Resource: "tag"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := models.Tag{UID: uuid.New(), Name: req.Name}
	if err := s.Repo.CreateTag(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// AddTagsForBook attaches the named tags to a book, creating tags that do
// not exist yet and skipping ones the book already carries. Returns the
// book with its full tag list.
func (s *TagService) AddTagsForBook(ctx context.Context, bookUID uuid.UUID, req transport.AddTagsRequest) (*models.Book, error) {
	book, err := s.Repo.GetBook(ctx, bookUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "book"}
		}
		return nil, err
	}

	attached := make(map[string]bool, len(book.Tags))
	for _, t := range book.Tags {
		attached[t.Name] = true
	}

	var tagsToAdd []models.Tag
	for _, t := range req.Tags {
		if t.Name == "" {
			return nil, ErrValidation
		}
		if attached[t.Name] {
			continue
		}

		tag, err := s.Repo.GetTagByName(ctx, t.Name)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			tag = &models.Tag{UID: uuid.New(), Name: t.Name}
		}
		tagsToAdd = append(tagsToAdd, *tag)
		attached[t.Name] = true
	}

	if len(tagsToAdd) > 0 {
		if err := s.Repo.AppendBookTags(ctx, book, tagsToAdd); err != nil {
			return nil, err
		}
	}

	return s.Repo.GetBook(ctx, bookUID)
}

func (s *TagService) PatchTag(ctx context.Context, uid uuid.UUID, req transport.CreateTagRequest) (*models.Tag, error) {
	if req.Name == "" {
		return nil, ErrValidation
	}

	tag, err := s.Repo.GetTag(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "tag"}
		}
		return nil, err
	}

	// renaming onto another tag's name collides the same way creating does
	if existing, err := s.Repo.GetTagByName(ctx, req.Name); err == nil {
		if existing.UID != uid {
			return nil, &AlreadyExistsError{Resource: "tag"}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag.Name = req.Name
	if err := s.Repo.SaveTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) DeleteTag(ctx context.Context, uid uuid.UUID) error {
	if err := s.Repo.DeleteTag(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "tag"}
		}
		return err
	}
	return nil
}
