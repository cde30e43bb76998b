package services

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/entity"
	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

type UploadService struct {
	Repo      *repository.FileRepository
	UploadDir string
	BaseURL   string
	log       *slog.Logger
}

func NewUploadService(repo *repository.FileRepository, uploadDir, baseURL string, log *slog.Logger) *UploadService {
	return &UploadService{Repo: repo, UploadDir: uploadDir, BaseURL: baseURL, log: log}
}

// Save writes the uploaded file to disk under a uuid-prefixed name and
// records it; the stored filename never collides with another upload.
func (s *UploadService) Save(uploadedBy uint, fh *multipart.FileHeader) (*entity.File, error) {
	if fh.Size == 0 {
		return nil, apperr.BadRequest("empty file")
	}

	if err := os.MkdirAll(s.UploadDir, 0o755); err != nil {
		return nil, apperr.Wrap(err, "failed to store file")
	}

	filename := uuid.NewString() + filepath.Ext(fh.Filename)
	path := filepath.Join(s.UploadDir, filename)

	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Wrap(err, "failed to store file")
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to store file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, apperr.Wrap(err, "failed to store file")
	}

	f := entity.File{
		OriginalName: fh.Filename,
		Filename:     filename,
		Mimetype:     fh.Header.Get("Content-Type"),
		Size:         fh.Size,
		Path:         path,
		URL:          fmt.Sprintf("%s/uploads/%s", s.BaseURL, filename),
		UploadedBy:   uploadedBy,
	}
	if err := s.Repo.Create(&f); err != nil {
		os.Remove(path)
		s.log.Error("file record creation failed", "error", err)
		return nil, apperr.Wrap(err, "failed to store file")
	}

	s.log.Info("file uploaded", "fileId", f.ID, "filename", filename, "size", f.Size)
	return &f, nil
}

func (s *UploadService) FindOne(id uint) (*entity.File, error) {
	f, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("file with id %d not found", id)
		}
		return nil, apperr.Wrap(err, "failed to fetch file")
	}
	return f, nil
}

func (s *UploadService) ListByUploader(uploadedBy uint) ([]entity.File, error) {
	files, err := s.Repo.ListByUploader(uploadedBy)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list files")
	}
	return files, nil
}

// Remove deletes the record first and the bytes after; a missing disk file
// is not an error.
func (s *UploadService) Remove(id uint) error {
	f, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return apperr.Wrap(err, "failed to delete file")
	}
	if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("stored file could not be removed", "path", f.Path, "error", err)
	}
	s.log.Info("file deleted", "fileId", id)
	return nil
}
