package repository

import (
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
)

type FileRepository struct {
	DB *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{DB: db}
}

func (r *FileRepository) Create(f *entity.File) error {
	return r.DB.Create(f).Error
}

func (r *FileRepository) FindByID(id uint) (*entity.File, error) {
	var f entity.File
	if err := r.DB.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepository) ListByUploader(uploadedBy uint) ([]entity.File, error) {
	var files []entity.File
	err := r.DB.Where("uploaded_by = ?", uploadedBy).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *FileRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.File{}, id).Error
}
