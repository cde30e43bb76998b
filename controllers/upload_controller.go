package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/iroda0103/dastavka/pkg/resp"
	"github.com/iroda0103/dastavka/services"
	"github.com/iroda0103/dastavka/utils"
)

type UploadController struct {
	Service *services.UploadService
}

func NewUploadController(service *services.UploadService) *UploadController {
	return &UploadController{Service: service}
}

// POST /upload (multipart, field "file")
func (uc *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		resp.BadRequest(c, "file is required")
		return
	}

	f, err := uc.Service.Save(utils.CurrentUserID(c), fh)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, f)
}

// GET /upload
func (uc *UploadController) List(c *gin.Context) {
	files, err := uc.Service.ListByUploader(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, files)
}

// GET /upload/:id
func (uc *UploadController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid file id")
		return
	}

	f, err := uc.Service.FindOne(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, f)
}

// DELETE /upload/:id
func (uc *UploadController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid file id")
		return
	}

	if err := uc.Service.Remove(uint(id)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "file deleted successfully", "id": id})
}
