package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iroda0103/dastavka/pkg/apperr"
	"github.com/iroda0103/dastavka/repository"
)

func newUploadService(t *testing.T, db *gorm.DB) *UploadService {
	t.Helper()
	return NewUploadService(
		repository.NewFileRepository(db),
		t.TempDir(),
		"http://localhost:8080",
		testLogger(),
	)
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadSave(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	fh := multipartFile(t, "logo.png", []byte("png-bytes"))
	f, err := svc.Save(7, fh)
	require.NoError(t, err)
	require.Equal(t, "logo.png", f.OriginalName)
	require.Equal(t, ".png", filepath.Ext(f.Filename))
	require.NotEqual(t, "logo.png", f.Filename)
	require.Equal(t, uint(7), f.UploadedBy)
	require.Contains(t, f.URL, "/uploads/"+f.Filename)

	data, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestUploadSaveEmptyFile(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	fh := multipartFile(t, "empty.txt", nil)
	_, err := svc.Save(1, fh)
	require.True(t, apperr.IsKind(err, apperr.KindBadRequest))
}

func TestUploadListAndRemove(t *testing.T) {
	db := newTestDB(t)
	svc := newUploadService(t, db)

	f1, err := svc.Save(3, multipartFile(t, "a.jpg", []byte("a")))
	require.NoError(t, err)
	_, err = svc.Save(3, multipartFile(t, "b.jpg", []byte("b")))
	require.NoError(t, err)
	_, err = svc.Save(4, multipartFile(t, "c.jpg", []byte("c")))
	require.NoError(t, err)

	mine, err := svc.ListByUploader(3)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	require.NoError(t, svc.Remove(f1.ID))
	_, err = svc.FindOne(f1.ID)
	require.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = os.Stat(f1.Path)
	require.True(t, os.IsNotExist(err))

	// a record whose bytes are already gone still deletes cleanly
	f4, err := svc.Save(5, multipartFile(t, "d.jpg", []byte("d")))
	require.NoError(t, err)
	require.NoError(t, os.Remove(f4.Path))
	require.NoError(t, svc.Remove(f4.ID))
}
