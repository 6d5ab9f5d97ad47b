package sqlite

import (
	"context"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type reviewsRepo struct {
	db dbtx
}

func (r *reviewsRepo) UpsertReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (id, food_id, user_id, rating, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (food_id, user_id) DO UPDATE
		    SET rating = excluded.rating,
		        body = excluded.body,
		        updated_at = excluded.updated_at`,
		rv.ID, rv.FoodID, rv.UserID, rv.Rating, rv.Body, rv.CreatedAt.UTC(), rv.UpdatedAt.UTC(),
	)
	return mapWriteError(err)
}

func (r *reviewsRepo) ListReviewsByFood(ctx context.Context, foodID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rv.id, rv.food_id, rv.user_id, u.name, rv.rating, rv.body, rv.created_at, rv.updated_at
		   FROM reviews rv
		   JOIN users u ON u.id = rv.user_id
		  WHERE rv.food_id = ?
		  ORDER BY rv.updated_at DESC, rv.id DESC`,
		foodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.FoodID, &rv.UserID, &rv.UserName, &rv.Rating, &rv.Body,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
