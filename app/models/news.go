package models

import (
	"time"
)

// News represents a news article. The slug is generated once at creation
// and acts as the external key; the numeric ID stays internal.
type News struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=3,max=255"`
	Slug     string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"slug"`
	Body     string    `gorm:"type:text;not null" json:"body" validate:"required"`
	Views    int64     `gorm:"default:0" json:"views"`
	AuthorID uint      `gorm:"index;not null" json:"authorId"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Images   []Image   `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"images"`
	Comments []Comment `gorm:"foreignKey:NewsID;constraint:OnDelete:CASCADE" json:"comments"`

	LikedByUsers []*User `gorm:"many2many:news_likes;joinForeignKey:NewsID;joinReferences:UserID" json:"likedByUsers"`
	LikesCount   int64   `gorm:"-" json:"likesCount"`

	Created time.Time `gorm:"autoCreateTime" json:"created"`
	Updated time.Time `gorm:"autoUpdateTime" json:"updated"`
}

// TableName specifies the table name for the News model
func (News) TableName() string {
	return "news"
}
