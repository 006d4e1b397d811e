package model

import "github.com/shopspring/decimal"

// カートの明細
// 同一商品は1行だけ（PKは cart_id + ean）。
// line_total は追加時点の単価×数量を保存する。
type CartLine struct {
	CartID    int64           `gorm:"primaryKey;autoIncrement:false" json:"cart_id"`
	EAN       int64           `gorm:"primaryKey;autoIncrement:false;column:ean" json:"ean"`
	LineTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`
}

func (CartLine) TableName() string {
	return "cart_lines"
}
