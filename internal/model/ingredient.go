package model

import "time"

// Ingredient is a food component referenced by recipes. Same ownership and
// uniqueness rules as Tag.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name"`
	UserID    uint      `json:"-" gorm:"not null;uniqueIndex:idx_ingredients_user_name;index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}
