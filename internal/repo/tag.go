package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/book_service/internal/models"
)

func (r *GormRepo) GetTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *GormRepo) GetTag(ctx context.Context, uid uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("uid = ?", uid).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *GormRepo) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) error {
	return r.DB.WithContext(ctx).Create(tag).Error
}

func (r *GormRepo) SaveTag(ctx context.Context, tag *models.Tag) error {
	return r.DB.WithContext(ctx).Save(tag).Error
}

func (r *GormRepo) DeleteTag(ctx context.Context, uid uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("uid = ?", uid).Delete(&models.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) AppendBookTags(ctx context.Context, book *models.Book, tags []models.Tag) error {
	return r.DB.WithContext(ctx).Model(book).Association("Tags").Append(&tags)
}
