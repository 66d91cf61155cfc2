package smoke

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"
)

// placeholderPNG is a 1x1 image; the OCR endpoint never inspects it.
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type store struct {
	ID   int    `json:"store_id"`
	Name string `json:"store_name"`
}

type menuItem struct {
	ID    interface{} `json:"menu_item_id"`
	Name  string      `json:"item_name"`
	Price int64       `json:"price_small"`
}

type menu struct {
	StoreName string     `json:"store_name"`
	Items     []menuItem `json:"items"`
}

type errorBody struct {
	Error string `json:"error"`
}

type orderItem struct {
	MenuItemID interface{} `json:"menu_item_id"`
	Quantity   int64       `json:"quantity"`
	Price      int64       `json:"price"`
}

type orderRequest struct {
	StoreID  int         `json:"store_id,omitempty"`
	Items    []orderItem `json:"items"`
	Language string      `json:"language,omitempty"`
}

type orderResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Order   *struct {
		OrderID     string `json:"order_id"`
		StoreID     int    `json:"store_id"`
		TotalAmount int64  `json:"total_amount"`
	} `json:"order"`
}

func (r *Runner) checkHealth(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	code, err := r.do(ctx, http.MethodGet, "/api/health", "", nil, &body)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("status field %q, want ok", body.Status)
	}
	return nil
}

func (r *Runner) checkListStores(ctx context.Context) error {
	var stores []store
	code, err := r.do(ctx, http.MethodGet, "/api/stores", "", nil, &stores)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if len(stores) == 0 {
		return fmt.Errorf("no stores returned")
	}
	return nil
}

func (r *Runner) checkGetStore(ctx context.Context) error {
	var s store
	code, err := r.do(ctx, http.MethodGet, "/api/stores/1", "", nil, &s)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if s.ID != 1 {
		return fmt.Errorf("store id %d, want 1", s.ID)
	}
	return nil
}

func (r *Runner) checkMissingStore(ctx context.Context) error {
	var body errorBody
	code, err := r.do(ctx, http.MethodGet, "/api/stores/999", "", nil, &body)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusNotFound); err != nil {
		return err
	}
	if body.Error == "" {
		return fmt.Errorf("missing error field")
	}
	return nil
}

func (r *Runner) checkMenu(ctx context.Context, lang string) error {
	var m menu
	code, err := r.do(ctx, http.MethodGet, "/api/menus/1?lang="+lang, "", nil, &m)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if m.StoreName == "" || len(m.Items) == 0 {
		return fmt.Errorf("empty menu for %s", lang)
	}
	return nil
}

func (r *Runner) checkMenuUnsupported(ctx context.Context) error {
	var body errorBody
	code, err := r.do(ctx, http.MethodGet, "/api/menus/1?lang=fr-FR", "", nil, &body)
	if err != nil {
		return err
	}
	return expectStatus(code, http.StatusNotFound)
}

// checkOCR uploads the placeholder image. wantFirst, when set, is the
// expected name of the first recognized item.
func (r *Runner) checkOCR(ctx context.Context, lang, wantFirst string) error {
	img, err := base64.StdEncoding.DecodeString(placeholderPNG)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "menu.png")
	if err != nil {
		return err
	}
	if _, err := fw.Write(img); err != nil {
		return err
	}
	if err := mw.WriteField("lang", lang); err != nil {
		return err
	}
	if err := mw.WriteField("store_id", "999"); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	var body struct {
		Success  bool `json:"success"`
		MenuData menu `json:"menu_data"`
	}
	start := time.Now()
	code, err := r.do(ctx, http.MethodPost, "/api/upload-menu-image", mw.FormDataContentType(), &buf, &body)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if elapsed < r.minDelay {
		return fmt.Errorf("answered after %s, want at least %s", elapsed, r.minDelay)
	}
	if !body.Success || len(body.MenuData.Items) != 3 {
		return fmt.Errorf("got %d items, want 3", len(body.MenuData.Items))
	}
	if wantFirst != "" && body.MenuData.Items[0].Name != wantFirst {
		return fmt.Errorf("first item %q, want %q", body.MenuData.Items[0].Name, wantFirst)
	}
	return nil
}

func (r *Runner) checkCreateOrder(ctx context.Context) error {
	var resp orderResponse
	code, err := r.postJSON(ctx, "/api/orders", orderRequest{
		StoreID:  1,
		Items:    []orderItem{{MenuItemID: 101, Quantity: 1, Price: 60}},
		Language: "zh-TW",
	}, &resp)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if resp.Order == nil || resp.Order.TotalAmount != 60 || resp.Order.StoreID != 1 {
		return fmt.Errorf("unexpected order %+v", resp.Order)
	}
	return nil
}

func (r *Runner) checkOrderTotal(ctx context.Context) error {
	var resp orderResponse
	code, err := r.postJSON(ctx, "/api/orders", orderRequest{
		StoreID: 1,
		Items: []orderItem{
			{MenuItemID: 101, Quantity: 2, Price: 60},
			{MenuItemID: 102, Quantity: 1, Price: 50},
		},
	}, &resp)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusOK); err != nil {
		return err
	}
	if resp.Order == nil || resp.Order.TotalAmount != 170 {
		return fmt.Errorf("unexpected order %+v", resp.Order)
	}
	return nil
}

func (r *Runner) checkRejectOrder(ctx context.Context) error {
	var resp orderResponse
	code, err := r.postJSON(ctx, "/api/orders", orderRequest{
		Items: []orderItem{{MenuItemID: 101, Quantity: 1, Price: 60}},
	}, &resp)
	if err != nil {
		return err
	}
	if err := expectStatus(code, http.StatusBadRequest); err != nil {
		return err
	}
	if resp.Error == "" || resp.Order != nil {
		return fmt.Errorf("expected error body without order")
	}
	return nil
}

func (r *Runner) checkDistinctOrderIDs(ctx context.Context) error {
	req := orderRequest{StoreID: 2, Items: []orderItem{}}
	var a, b orderResponse
	if _, err := r.postJSON(ctx, "/api/orders", req, &a); err != nil {
		return err
	}
	if _, err := r.postJSON(ctx, "/api/orders", req, &b); err != nil {
		return err
	}
	if a.Order == nil || b.Order == nil {
		return fmt.Errorf("missing order in response")
	}
	if a.Order.OrderID == b.Order.OrderID {
		return fmt.Errorf("duplicate order id %s", a.Order.OrderID)
	}
	return nil
}
