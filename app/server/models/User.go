package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// Resolved from the verified identity on first use
	UID         string `gorm:"column:uid;index"`         // identity provider subject
	Email       string `gorm:"column:email;uniqueIndex"` // email, globally unique
	DisplayName string `gorm:"column:display_name"`      // display name from the token, may be empty
}
