package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"app/internal/usecase"

	"github.com/shopspring/decimal"
)

// 商品カタログサービスのHTTPクライアント
// 呼び出し元のAuthorizationヘッダをそのまま転送する。
type ItemHTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewItemHTTPClient(baseURL string, httpClient *http.Client) *ItemHTTPClient {
	return &ItemHTTPClient{baseURL: baseURL, http: httpClient}
}

type itemResponse struct {
	EAN   int64           `json:"ean"`
	Price decimal.Decimal `json:"price"`
}

// GetItem は GET {base}/item/{ean} を呼ぶ。
// 404はErrItemNotFound。それ以外の失敗はそのままerrorで返す
// （潰すかどうかはusecase側が決める）。
func (c *ItemHTTPClient) GetItem(ctx context.Context, ean int64, credential string) (usecase.Item, error) {
	url := fmt.Sprintf("%s/item/%d", c.baseURL, ean)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return usecase.Item{}, err
	}
	req.Header.Set("Authorization", credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return usecase.Item{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return usecase.Item{}, usecase.ErrItemNotFound
	case resp.StatusCode != http.StatusOK:
		return usecase.Item{}, fmt.Errorf("item service returned %d", resp.StatusCode)
	}

	var body itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return usecase.Item{}, err
	}

	return usecase.Item{EAN: body.EAN, Price: body.Price}, nil
}
