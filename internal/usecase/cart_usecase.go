package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CartUsecase は /cart の業務ロジックです。
// 入力検証に失敗したときだけerrorを返し、それ以外の失敗
// （商品なし・ユーザーなし・カートなし・外部サービス障害）はfalseに潰す。
// DB障害のみ500のHTTPErrorになる。
type CartUsecase struct {
	tx       repo.TransactionManager
	cartRepo repo.CartRepository
	lineRepo repo.CartLineRepository
	tokens   TokenVerifier
	users    UserDirectory
	items    ItemCatalog
	log      *logrus.Logger
}

func NewCartUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	lineRepo repo.CartLineRepository,
	tokens TokenVerifier,
	users UserDirectory,
	items ItemCatalog,
	log *logrus.Logger,
) *CartUsecase {
	return &CartUsecase{
		tx:       tx,
		cartRepo: cartRepo,
		lineRepo: lineRepo,
		tokens:   tokens,
		users:    users,
		items:    items,
		log:      log,
	}
}

type InsertItemInput struct {
	EAN      int64
	Quantity int64
}

type SnapshotLine struct {
	EAN       int64           `json:"ean"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// 呼び出し時点で永続化されている明細をそのまま返す
type CartSnapshot struct {
	Owner string          `json:"owner"`
	Total decimal.Decimal `json:"total"`
	Lines []SnapshotLine  `json:"lines"`
}

// Insert は商品をカートに入れる。カートが無ければ作る。
// 同一商品の再投入はその明細のline_totalを新しい数量で上書きする
// （数量加算ではない。加算に変えたくなったらここ）。
func (u *CartUsecase) Insert(ctx context.Context, in InsertItemInput, credential string) (bool, error) {
	//検証はすべての外部呼び出しより前
	li, err := validator.ValidateLineItem(in.EAN, in.Quantity)
	if err != nil {
		return false, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, ok := u.lookupItem(ctx, li.EAN, credential)
	if !ok {
		return false, nil
	}

	owner, ok := u.resolveOwner(ctx, credential)
	if !ok {
		return false, nil
	}

	lineTotal := item.Price.Mul(decimal.NewFromInt(li.Quantity))

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindOpenByOwnerForUpdate(ctx, owner)

		if errors.Is(err, repo.ErrNotFound) {
			//OPENカートが無ければ作る（total = 単価×数量）
			created, createErr := r.Carts().Create(ctx, model.Cart{
				Owner:  owner,
				Status: model.CartStatusOpen,
				Total:  lineTotal,
			})
			if createErr == nil {
				return r.CartLines().Upsert(ctx, model.CartLine{
					CartID:    created.ID,
					EAN:       li.EAN,
					LineTotal: lineTotal,
				})
			}

			//同時リクエストに先を越されたら既存カートを引き直す
			if !errors.Is(createErr, repo.ErrDuplicateOpenCart) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			cart, err = r.Carts().FindOpenByOwnerForUpdate(ctx, owner)
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//既存カート：明細を上書きして合計を引き直す
		if err := r.CartLines().Upsert(ctx, model.CartLine{
			CartID:    cart.ID,
			EAN:       li.EAN,
			LineTotal: lineTotal,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		total, err := u.sumLines(ctx, r, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Carts().UpdateTotal(ctx, cart.ID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove は商品をカートから外す。最後の明細が消えたらカートごと消す。
func (u *CartUsecase) Remove(ctx context.Context, ean int64, credential string) (bool, error) {
	normalized, err := validator.ValidateEAN(ean)
	if err != nil {
		return false, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, ok := u.lookupItem(ctx, normalized, credential); !ok {
		return false, nil
	}

	owner, ok := u.resolveOwner(ctx, credential)
	if !ok {
		return false, nil
	}

	removed := false

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindOpenByOwnerForUpdate(ctx, owner)
		if errors.Is(err, repo.ErrNotFound) {
			u.log.WithField("owner", owner).Error("cart not found")
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//消す前に明細があるか確認する
		lines, err := r.CartLines().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		found := false
		for _, line := range lines {
			if line.EAN == normalized {
				found = true
				break
			}
		}
		if !found {
			u.log.WithFields(logrus.Fields{"owner": owner, "ean": normalized}).Error("item not in cart")
			return nil
		}

		if err := r.CartLines().Delete(ctx, cart.ID, normalized); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//残った明細から合計を引き直す
		remaining, err := r.CartLines().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if len(remaining) == 0 {
			//空のOPENカートは残さない
			if err := r.Carts().Delete(ctx, cart.ID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			removed = true
			return nil
		}

		total := decimal.Zero
		for _, line := range remaining {
			total = total.Add(line.LineTotal)
		}
		if err := r.Carts().UpdateTotal(ctx, cart.ID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		removed = true
		return nil
	})

	if err != nil {
		return false, err
	}
	return removed, nil
}

// AvailableForCheckout はOPENカートのスナップショットを返す。
// 読み取り専用。無ければnil。
func (u *CartUsecase) AvailableForCheckout(ctx context.Context, credential string) (*CartSnapshot, error) {
	owner, ok := u.resolveOwner(ctx, credential)
	if !ok {
		return nil, nil
	}

	cart, err := u.cartRepo.FindOpenByOwner(ctx, owner)
	if errors.Is(err, repo.ErrNotFound) {
		u.log.WithField("owner", owner).Error("cart not found")
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines, err := u.lineRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	snapLines := make([]SnapshotLine, 0, len(lines))
	for _, line := range lines {
		snapLines = append(snapLines, SnapshotLine{EAN: line.EAN, LineTotal: line.LineTotal})
	}

	return &CartSnapshot{Owner: cart.Owner, Total: cart.Total, Lines: snapLines}, nil
}

// Finalize はOPENカートをFINALIZEDにする。
// 明細は購入履歴として残す。以降このカートはOPEN検索に出ない。
func (u *CartUsecase) Finalize(ctx context.Context, credential string) (bool, error) {
	owner, ok := u.resolveOwner(ctx, credential)
	if !ok {
		return false, nil
	}

	finalized := false

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindOpenByOwnerForUpdate(ctx, owner)
		if errors.Is(err, repo.ErrNotFound) {
			u.log.WithField("owner", owner).Error("cart not found")
			return nil
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusFinalized); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		finalized = true
		return nil
	})

	if err != nil {
		return false, err
	}
	return finalized, nil
}

// resolveOwner はtokenからsubjectを取り、ユーザーディレクトリで存在確認する。
// 4操作とも同じ経路。どの失敗もログだけ出して「ユーザー不明」に潰す。
func (u *CartUsecase) resolveOwner(ctx context.Context, credential string) (string, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(credential, "Bearer "))

	sub, err := u.tokens.Subject(raw)
	if err != nil {
		u.log.WithError(err).Error("invalid token")
		return "", false
	}

	exists, err := u.users.Exists(ctx, sub, credential)
	if err != nil {
		//外部サービス障害はここで止める（呼び出し元に漏らさない）
		u.log.WithError(err).Error("user lookup failed")
		return "", false
	}
	if !exists {
		u.log.WithField("login", sub).Error("user not found")
		return "", false
	}

	return sub, true
}

func (u *CartUsecase) lookupItem(ctx context.Context, ean int64, credential string) (Item, bool) {
	item, err := u.items.GetItem(ctx, ean, credential)
	if errors.Is(err, ErrItemNotFound) {
		u.log.WithField("ean", ean).Error("item not found")
		return Item{}, false
	}
	if err != nil {
		u.log.WithError(err).Error("item lookup failed")
		return Item{}, false
	}
	return item, true
}

func (u *CartUsecase) sumLines(ctx context.Context, r repo.TxRepos, cartID int64) (decimal.Decimal, error) {
	lines, err := r.CartLines().ListByCartID(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total, nil
}
