package models

import (
	"time"
)

// Image is a stored file attached to a news article. URL points at the
// external file store; the row is removed together with its article.
type Image struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	URL     string    `gorm:"type:varchar(255);not null" json:"url"`
	NewsID  uint      `gorm:"index;not null" json:"newsId"`
	News    *News     `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"-"`
	Created time.Time `gorm:"autoCreateTime" json:"created"`
	Updated time.Time `gorm:"autoUpdateTime" json:"updated"`
}

func (Image) TableName() string {
	return "images"
}
