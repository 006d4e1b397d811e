package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartLineRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error)
	// 同一商品は上書き（加算しない）
	Upsert(ctx context.Context, line model.CartLine) error
	Delete(ctx context.Context, cartID int64, ean int64) error
}
