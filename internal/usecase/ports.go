package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// 商品カタログが返す商品
type Item struct {
	EAN   int64
	Price decimal.Decimal
}

// 商品がカタログに存在しない
var ErrItemNotFound = errors.New("item not found")

// bearerトークンからsubjectを取り出す（token serviceの責務）
type TokenVerifier interface {
	Subject(rawToken string) (string, error)
}

// ユーザーディレクトリ（HTTP越し）
type UserDirectory interface {
	Exists(ctx context.Context, login string, credential string) (bool, error)
}

// 商品カタログ（HTTP越し）。価格は挿入時点のものを使う。
type ItemCatalog interface {
	GetItem(ctx context.Context, ean int64, credential string) (Item, error)
}
