package handler

import (
	"context"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Usecaseは interface で受ける（テストで差し替える）
type CartService interface {
	Insert(ctx context.Context, in usecase.InsertItemInput, credential string) (bool, error)
	Remove(ctx context.Context, ean int64, credential string) (bool, error)
	AvailableForCheckout(ctx context.Context, credential string) (*usecase.CartSnapshot, error)
	Finalize(ctx context.Context, credential string) (bool, error)
}

// /cartのHTTP
type CartHandler struct {
	uc CartService
}

// DI
func NewCartHandler(uc CartService) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddItemRequest struct {
	EAN      int64 `json:"ean"`
	Quantity int64 `json:"quantity"`
}

// /cart配下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.POST("", h.insert)
	g.DELETE("/:ean", h.remove)
	g.GET("/available-for-checkout", h.availableForCheckout)
	g.PUT("/finalize", h.finalize)
}

// 201: 追加した / 409: 追加できなかった
func (h *CartHandler) insert(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ok, err := h.uc.Insert(c.Request().Context(), usecase.InsertItemInput{
		EAN:      req.EAN,
		Quantity: req.Quantity,
	}, c.Request().Header.Get("Authorization"))
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusConflict)
	}

	return c.NoContent(http.StatusCreated)
}

// 200: 外した / 204: 外すものがなかった
func (h *CartHandler) remove(c echo.Context) error {
	ean, err := strconv.ParseInt(c.Param("ean"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ean"})
	}

	ok, err := h.uc.Remove(c.Request().Context(), ean, c.Request().Header.Get("Authorization"))
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return c.NoContent(http.StatusOK)
}

// 200: スナップショット / 204: OPENカートなし
func (h *CartHandler) availableForCheckout(c echo.Context) error {
	snap, err := h.uc.AvailableForCheckout(c.Request().Context(), c.Request().Header.Get("Authorization"))
	if err != nil {
		return writeError(c, err)
	}
	if snap == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, snap)
}

// 200: 確定した / 204: 確定するカートがなかった
func (h *CartHandler) finalize(c echo.Context) error {
	ok, err := h.uc.Finalize(c.Request().Context(), c.Request().Header.Get("Authorization"))
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	return c.NoContent(http.StatusOK)
}
