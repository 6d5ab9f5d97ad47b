package domain

import "time"

type Like struct {
	UserID    string
	FoodID    string
	CreatedAt time.Time
}

type Comment struct {
	ID        string
	FoodID    string
	UserID    string
	UserName  string
	Body      string
	CreatedAt time.Time
}

// Review is a 1 to 5 star rating. A user has at most one review per food.
type Review struct {
	ID        string
	FoodID    string
	UserID    string
	UserName  string
	Rating    int
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
