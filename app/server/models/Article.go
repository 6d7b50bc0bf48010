package models

import "gorm.io/gorm"

type Article struct {
	gorm.Model

	Slug         string `gorm:"column:slug;uniqueIndex"`   // URL identifier, globally unique
	Title        string `gorm:"column:title"`              // headline
	SectionTitle string `gorm:"column:section_title"`      // sub heading
	Category     string `gorm:"column:category;index"`     // free-form category
	Content      string `gorm:"column:content;type:text"`  // Markdown body
	ImageURL     string `gorm:"column:image_url"`          // header image, empty when none
	Published    bool   `gorm:"column:published;index"`    // visible to the public
	UserEmail    string `gorm:"column:user_email"`         // admin who created it
}
