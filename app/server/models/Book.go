package models

import "gorm.io/gorm"

type Book struct {
	gorm.Model

	Title           string `gorm:"column:title;index"`                                  // title, searched by substring
	Author          string `gorm:"column:author"`                                       // author
	Description     string `gorm:"column:description"`                                  // blurb shown on the detail page
	Category        string `gorm:"column:category;index"`                               // category, searched by exact match
	Img             string `gorm:"column:img"`                                          // cover image (URL or data URI)
	Copies          int    `gorm:"column:copies;check:copies >= 0"`                     // copies owned
	CopiesAvailable int    `gorm:"column:copies_available;check:copies_available >= 0"` // copies on the shelf right now
}
