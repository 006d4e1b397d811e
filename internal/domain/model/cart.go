package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusOpen      CartStatus = "OPEN"
	CartStatusFinalized CartStatus = "FINALIZED"
)

// 1ユーザーにつきOPENは1つ（carts(owner) WHERE status='OPEN' の部分ユニークインデックスで担保）
// total は常に明細の合計と一致させる。
type Cart struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner     string          `gorm:"type:varchar(255);not null;index" json:"owner"`
	Status    CartStatus      `gorm:"type:varchar(20);not null;index" json:"status"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
