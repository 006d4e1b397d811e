package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのOPENカートを取得
func (r *CartGormRepository) FindOpenByOwner(ctx context.Context, owner string) (model.Cart, error) {
	return r.findOpen(ctx, r.db, owner)
}

// ユーザーのOPENカートを行ロック付きで取得
func (r *CartGormRepository) FindOpenByOwnerForUpdate(ctx context.Context, owner string) (model.Cart, error) {
	return r.findOpen(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), owner)
}

func (r *CartGormRepository) findOpen(ctx context.Context, db *gorm.DB, owner string) (model.Cart, error) {
	var cart model.Cart

	err := db.WithContext(ctx).
		Where("owner = ? AND status = ?", owner, model.CartStatusOpen).
		Order("id desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// OPENカートを作成
// 同じownerのOPENが既にあると部分ユニークインデックスに弾かれて
// ErrDuplicateOpenCartを返す。呼び出し側が引き直す。
// INSERTはネストしたTransactionで包む。トランザクション内から呼ばれた場合は
// SAVEPOINTになり、ユニーク違反が外側のトランザクションごと中断させない
// （中断すると引き直しのSELECTが25P02で落ちる）。
func (r *CartGormRepository) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cart).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Cart{}, repo.ErrDuplicateOpenCart
		}
		return model.Cart{}, err
	}
	return cart, nil
}

// carts.totalを更新
func (r *CartGormRepository) UpdateTotal(ctx context.Context, cartID int64, total decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("total", total)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// carts.statusを更新
func (r *CartGormRepository) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// カートを明細ごと削除（空になったOPENカートは残さない）
func (r *CartGormRepository) Delete(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartLine{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Cart{}, cartID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}
