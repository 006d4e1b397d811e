package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ユーザーディレクトリサービスのHTTPクライアント
type UserHTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewUserHTTPClient(baseURL string, httpClient *http.Client) *UserHTTPClient {
	return &UserHTTPClient{baseURL: baseURL, http: httpClient}
}

// Exists は GET {base}/users/{login} を呼んで存在有無を返す。
// レスポンスbodyはboolean。404はfalse扱い。
func (c *UserHTTPClient) Exists(ctx context.Context, login string, credential string) (bool, error) {
	reqURL := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", credential)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		return false, nil
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("user service returned %d", resp.StatusCode)
	}

	var exists bool
	if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
