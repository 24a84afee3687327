package model

import "time"

// Tag labels a recipe, e.g. "Vegan" or "Dessert". Tags belong to exactly one
// user; the composite unique index backs the concurrent get-or-create path.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_tags_user_name"`
	UserID    uint      `json:"-" gorm:"not null;uniqueIndex:idx_tags_user_name;index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
