package models

import "gorm.io/gorm"

type ReviewScore struct {
	gorm.Model

	UserID    uint    `gorm:"column:user_id;uniqueIndex:idx_review_scores_user_article"`    // one score per user ...
	ArticleID uint    `gorm:"column:article_id;uniqueIndex:idx_review_scores_user_article"` // ... and article
	UserEmail string  `gorm:"column:user_email"`                                            // denormalized for listing
	Score     float64 `gorm:"column:score"`                                                 // 0 to 5
}
