package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// OPENカート作成がユニーク制約（owner, status=OPEN）に弾かれた
// 同時リクエストの負け側は既存カートを引き直す。
var ErrDuplicateOpenCart = errors.New("duplicate open cart")

type CartRepository interface {
	FindOpenByOwner(ctx context.Context, owner string) (model.Cart, error)
	// トランザクション内で行ロック付きで取得する
	FindOpenByOwnerForUpdate(ctx context.Context, owner string) (model.Cart, error)
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)
	UpdateTotal(ctx context.Context, cartID int64, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error
	// カートと明細をまとめて削除
	Delete(ctx context.Context, cartID int64) error
}
