package models

import (
	"time"

	"gorm.io/gorm"
)

// Loan is one checkout of a book by a user. It stays active until ReturnedAt is set.
type Loan struct {
	gorm.Model

	UserEmail    string     `gorm:"column:user_email;uniqueIndex:idx_loans_active,where:returned_at IS NULL"` // borrower, as verified by the identity provider
	BookID       uint       `gorm:"column:book_id;uniqueIndex:idx_loans_active,where:returned_at IS NULL"`    // borrowed book
	CheckoutDate time.Time  `gorm:"column:checkout_date"`                                                     // when the loan started
	DueDate      time.Time  `gorm:"column:due_date;index"`                                                    // when the book must be back
	Renewals     int        `gorm:"column:renewals"`                                                          // times the loan has been renewed
	ReturnedAt   *time.Time `gorm:"column:returned_at;index"`                                                 // NULL while the loan is active

	Book Book `gorm:"foreignKey:BookID"`
}
