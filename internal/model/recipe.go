package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the aggregate root: scalar fields plus owned tag and ingredient
// sets. Tags and ingredients attached to a recipe always belong to the
// recipe's own user.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Link        string          `json:"link" gorm:"size:255"`
	Description string          `json:"description" gorm:"type:text"`
	Image       string          `json:"image" gorm:"size:255"` // stored media file name, empty when unset
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients"`
}
