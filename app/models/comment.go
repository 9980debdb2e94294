package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required,min=1"`
	AuthorID  uint      `gorm:"index;not null" json:"authorId"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	NewsID    uint      `gorm:"index;not null" json:"newsId"`
	News      *News     `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"news,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Comment) TableName() string {
	return "comments"
}
