package domain

import "time"

// Food is a menu item owned by a business.
type Food struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
	PriceCents  int64
	Image       string
	Categories  []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FoodStats are the engagement counters shown next to a food.
type FoodStats struct {
	LikeCount     int
	CommentCount  int
	ReviewCount   int
	AverageRating float64
}

// FoodFilter narrows a food listing. Empty fields match everything.
type FoodFilter struct {
	Categories []string // any of
	City       string   // substring of the business address
	Query      string   // substring of name or any category
	BusinessID string
}

// FoodSummary is a food with its owner's public details and engagement.
type FoodSummary struct {
	Food
	BusinessName    string
	BusinessAddress string
	Stats           FoodStats
}
