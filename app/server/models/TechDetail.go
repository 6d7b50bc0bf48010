package models

import "gorm.io/gorm"

// TechDetail is a read-only explanation page, independent of articles.
type TechDetail struct {
	gorm.Model

	Slug         string `gorm:"column:slug;uniqueIndex"`
	Title        string `gorm:"column:title"`
	SectionTitle string `gorm:"column:section_title"`
	Content      string `gorm:"column:content;type:text"` // Markdown body
	ImageURL     string `gorm:"column:image_url"`
}
