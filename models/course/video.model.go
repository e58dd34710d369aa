package course

import "gorm.io/gorm"

// Video is a single lesson video inside a module
type Video struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	DurationRaw string `json:"duration"`  // "MM:SS" or bare minutes
	VideoURL    string `json:"video_url"` // external provider URL
	OrderNum    int    `json:"order_num" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}
