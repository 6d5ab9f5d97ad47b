package sqlite

import (
	"context"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type commentsRepo struct {
	db dbtx
}

const commentSelect = `
SELECT c.id, c.food_id, c.user_id, u.name, c.body, c.created_at
  FROM comments c
  JOIN users u ON u.id = c.user_id`

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.FoodID, &c.UserID, &c.UserName, &c.Body, &c.CreatedAt)
	return c, err
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, food_id, user_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.FoodID, c.UserID, c.Body, c.CreatedAt.UTC(),
	)
	return mapWriteError(err)
}

func (r *commentsRepo) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id))
}

func (r *commentsRepo) ListCommentsByFood(ctx context.Context, foodID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		commentSelect+` WHERE c.food_id = ? ORDER BY c.created_at DESC, c.id DESC`, foodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
