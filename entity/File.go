package entity

import (
	"gorm.io/gorm"
)

type File struct {
	gorm.Model
	OriginalName string `gorm:"not null" json:"originalName"`
	Filename     string `gorm:"uniqueIndex;not null" json:"filename"`
	Mimetype     string `gorm:"not null" json:"mimetype"`
	Size         int64  `gorm:"not null" json:"size"`
	Path         string `gorm:"not null" json:"path"`
	URL          string `gorm:"not null" json:"url"`
	UploadedBy   uint   `gorm:"not null" json:"uploadedBy"`
}
