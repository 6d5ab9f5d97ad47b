package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
)

type foodsRepo struct {
	db dbtx
}

// foodSummarySelect reads a food, its owner and its engagement counters in
// one row. Categories come back as a JSON array.
const foodSummarySelect = `
SELECT f.id, f.business_id, f.name, f.description, f.price_cents, f.image,
       f.created_at, f.updated_at,
       b.name, b.address,
       (SELECT json_group_array(fc.category) FROM food_categories fc WHERE fc.food_id = f.id),
       (SELECT COUNT(*) FROM likes l WHERE l.food_id = f.id),
       (SELECT COUNT(*) FROM comments c WHERE c.food_id = f.id),
       (SELECT COUNT(*) FROM reviews r WHERE r.food_id = f.id),
       (SELECT COALESCE(AVG(r.rating), 0) FROM reviews r WHERE r.food_id = f.id)
  FROM foods f
  JOIN businesses b ON b.id = f.business_id`

func scanFoodSummary(row interface{ Scan(...any) error }) (domain.FoodSummary, error) {
	var (
		s          domain.FoodSummary
		categories string
	)
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.Name, &s.Description, &s.PriceCents, &s.Image,
		&s.CreatedAt, &s.UpdatedAt,
		&s.BusinessName, &s.BusinessAddress,
		&categories,
		&s.Stats.LikeCount, &s.Stats.CommentCount, &s.Stats.ReviewCount, &s.Stats.AverageRating,
	)
	if err != nil {
		return domain.FoodSummary{}, err
	}
	if err := json.Unmarshal([]byte(categories), &s.Categories); err != nil {
		return domain.FoodSummary{}, fmt.Errorf("decode categories of %s: %w", s.ID, err)
	}
	slices.Sort(s.Categories)
	return s, nil
}

func collectFoodSummaries(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.FoodSummary, error) {
	var out []domain.FoodSummary
	for rows.Next() {
		s, err := scanFoodSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *foodsRepo) CreateFood(ctx context.Context, f domain.Food) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO foods (id, business_id, name, name_fold, description, price_cents, image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.BusinessID, f.Name, fold(f.Name), f.Description, f.PriceCents, f.Image,
		f.CreatedAt.UTC(), f.UpdatedAt.UTC(),
	)
	if err != nil {
		return mapWriteError(err)
	}
	return r.insertCategories(ctx, f.ID, f.Categories)
}

func (r *foodsRepo) insertCategories(ctx context.Context, foodID string, categories []string) error {
	for _, c := range categories {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO food_categories (food_id, category) VALUES (?, ?)`, foodID, c)
		if err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}

func (r *foodsRepo) GetFood(ctx context.Context, id string) (domain.FoodSummary, error) {
	s, err := scanFoodSummary(r.db.QueryRowContext(ctx, foodSummarySelect+` WHERE f.id = ?`, id))
	if err != nil {
		return domain.FoodSummary{}, mapNotFound(err)
	}
	return s, nil
}

func (r *foodsRepo) UpdateFood(ctx context.Context, f domain.Food) error {
	err := requireAffected(r.db.ExecContext(ctx,
		`UPDATE foods
		    SET name = ?, name_fold = ?, description = ?, price_cents = ?, image = ?, updated_at = ?
		  WHERE id = ?`,
		f.Name, fold(f.Name), f.Description, f.PriceCents, f.Image, f.UpdatedAt.UTC(), f.ID,
	))
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM food_categories WHERE food_id = ?`, f.ID); err != nil {
		return err
	}
	return r.insertCategories(ctx, f.ID, f.Categories)
}

func (r *foodsRepo) DeleteFood(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id))
}

func (r *foodsRepo) ListFoods(ctx context.Context, filter domain.FoodFilter) ([]domain.FoodSummary, error) {
	var (
		where []string
		args  []any
	)

	if filter.BusinessID != "" {
		where = append(where, `f.business_id = ?`)
		args = append(args, filter.BusinessID)
	}
	if city := fold(filter.City); city != "" {
		where = append(where, `instr(b.address_fold, ?) > 0`)
		args = append(args, city)
	}
	if q := fold(filter.Query); q != "" {
		where = append(where, `(instr(f.name_fold, ?) > 0 OR EXISTS (
			SELECT 1 FROM food_categories qc WHERE qc.food_id = f.id AND instr(qc.category, ?) > 0))`)
		args = append(args, q, q)
	}
	if len(filter.Categories) > 0 {
		where = append(where, `EXISTS (
			SELECT 1 FROM food_categories cc
			 WHERE cc.food_id = f.id AND cc.category IN (`+placeholders(len(filter.Categories))+`))`)
		for _, c := range filter.Categories {
			args = append(args, c)
		}
	}

	query := foodSummarySelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY f.created_at DESC, f.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFoodSummaries(rows)
}
