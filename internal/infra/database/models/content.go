package models

import (
	"time"
)

type Content struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	MediaURL     string    `json:"mediaURL" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Category     string    `json:"category" gorm:"type:text;not null;index"`
	Tags         string    `json:"tags" gorm:"type:text"` // json-encoded string array
	OwnerID      string    `json:"ownerID" gorm:"type:text;not null;index"`
	OwnerName    string    `json:"ownerName" gorm:"type:text"`
	Public       bool      `json:"public" gorm:"type:boolean;not null;default:true;index"`
	LikeCount    int64     `json:"likeCount" gorm:"type:bigint;not null;default:0;index"`
	CommentCount int64     `json:"commentCount" gorm:"type:bigint;not null;default:0"`
	CreatedAt    time.Time `json:"cdate" gorm:"type:timestamp with time zone;not null;default:clock_timestamp();index"`
}

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ContentID string    `json:"contentID" gorm:"type:text;not null;index"`
	Content   Content   `json:"-" gorm:"foreignKey:ContentID;references:ID;constraint:OnDelete:CASCADE;"`
	AuthorID  string    `json:"authorID" gorm:"type:text;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Template struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	MediaURL  string    `json:"mediaURL" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
