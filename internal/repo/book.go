package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/models"
)

func (r *GormRepo) GetBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetUserBooks(ctx context.Context, userUID uuid.UUID) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).
		Where("user_uid = ?", userUID).
		Order("created_at DESC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) GetBook(ctx context.Context, uid uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).
		Preload("Reviews").
		Preload("Tags").
		Where("uid = ?", uid).
		First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Create(book).Error
}

func (r *GormRepo) SaveBook(ctx context.Context, book *models.Book) error {
	return r.DB.WithContext(ctx).Save(book).Error
}

func (r *GormRepo) DeleteBook(ctx context.Context, uid uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Book{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) UserOwnsBook(ctx context.Context, bookUID, userUID uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("uid = ? AND user_uid = ?", bookUID, userUID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
