package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartLineGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartLineGormRepository(db *gorm.DB) *CartLineGormRepository {
	return &CartLineGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartLineGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("ean asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 明細を登録（同一商品はline_totalを上書き）
func (r *CartLineGormRepository) Upsert(ctx context.Context, line model.CartLine) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "ean"}},
			DoUpdates: clause.AssignmentColumns([]string{"line_total"}),
		}).
		Create(&line).Error
}

// 明細を削除
func (r *CartLineGormRepository) Delete(ctx context.Context, cartID int64, ean int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND ean = ?", cartID, ean).
		Delete(&model.CartLine{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
