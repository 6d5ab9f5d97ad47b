package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type likesRepo struct {
	db dbtx
}

func (r *likesRepo) Like(ctx context.Context, userID, foodID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (user_id, food_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, food_id) DO NOTHING`,
		userID, foodID, at.UTC(),
	)
	return mapWriteError(err)
}

func (r *likesRepo) Unlike(ctx context.Context, userID, foodID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = ? AND food_id = ?`, userID, foodID)
	return err
}

func (r *likesRepo) ListLikedFoods(ctx context.Context, userID string) ([]domain.FoodSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		foodSummarySelect+`
		  JOIN likes lk ON lk.food_id = f.id AND lk.user_id = ?
		 ORDER BY lk.created_at DESC, f.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoodSummaries(rows)
}
