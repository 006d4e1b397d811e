package validator

import (
	"errors"
	"strconv"
)

var (
	// EANが不正（チェックディジット不一致など）
	ErrInvalidEAN = errors.New("invalid ean")

	// 数量が不正（1〜1000の範囲外）
	ErrInvalidQuantity = errors.New("invalid quantity")
)

const maxQuantity = 1000

// 検証済みの明細入力
type LineItem struct {
	EAN      int64
	Quantity int64
}

// ValidateEANは商品コードを検証して正規化する。
// 13桁のコードはEAN-13のチェックディジットを検証する。
// 13桁未満の社内コードはそのまま通す（0以下は不正）。
func ValidateEAN(ean int64) (int64, error) {
	if ean <= 0 {
		return 0, ErrInvalidEAN
	}

	digits := strconv.FormatInt(ean, 10)
	if len(digits) > 13 {
		return 0, ErrInvalidEAN
	}
	if len(digits) == 13 && !checkDigitOK(digits) {
		return 0, ErrInvalidEAN
	}

	return ean, nil
}

// ValidateLineItemは (ean, quantity) を検証して正規化する。
// 副作用なし。失敗したら呼び出し側は外部呼び出しをしない。
func ValidateLineItem(ean int64, quantity int64) (LineItem, error) {
	normalized, err := ValidateEAN(ean)
	if err != nil {
		return LineItem{}, err
	}

	if quantity <= 0 || quantity > maxQuantity {
		return LineItem{}, ErrInvalidQuantity
	}

	return LineItem{EAN: normalized, Quantity: quantity}, nil
}

// EAN-13のチェックディジット検証
// 左から奇数桁は×1、偶数桁は×3で合計し、末尾の桁と突き合わせる。
func checkDigitOK(digits string) bool {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(digits[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	check := (10 - sum%10) % 10
	return check == int(digits[12]-'0')
}
