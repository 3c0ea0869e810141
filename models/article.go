package models

import (
	"time"
)

type Article struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Type      string    `json:"type"`
	Author    string    `json:"author" gorm:"not null"`
	Date      time.Time `json:"date"`
	Tags      []Tag     `json:"tags" gorm:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArticleTag is the ordered article-to-tag join row. Tag order and positional
// duplicates must survive a round trip, so the join is managed explicitly
// instead of through a many2many association.
type ArticleTag struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"index;not null"`
	TagID     uint      `json:"tag_id" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
