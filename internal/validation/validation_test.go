package validation

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderRequest_Valid(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		StoreID: 1,
		Items: []Item{
			{MenuItemID: 101, Quantity: 2, Price: 60},
			{MenuItemID: "ocr-1-0", Quantity: 1, Price: 0},
		},
		Language: "zh-TW",
	}

	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid, got error: %v", err)
	}
}

func TestCreateOrderRequest_EmptyItemsAccepted(t *testing.T) {
	v := New()

	req := CreateOrderRequest{StoreID: 1, Items: []Item{}}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected empty items to be accepted, got %v", err)
	}
}

func TestCreateOrderRequest_MissingFields(t *testing.T) {
	v := New()

	// StoreID and Items missing
	req := CreateOrderRequest{}

	err := v.Struct(req)
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Contains(t, fields, "CreateOrderRequest.StoreID")
	assert.Contains(t, fields, "CreateOrderRequest.Items")
}

func TestCreateOrderRequest_InvalidItems(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		StoreID: 1,
		Items: []Item{
			{MenuItemID: 101, Quantity: 0, Price: 60},
			{MenuItemID: 102, Quantity: 1, Price: -5},
		},
	}

	err := v.Struct(req)
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Contains(t, fields, "CreateOrderRequest.Items[0].Quantity")
	assert.Contains(t, fields, "CreateOrderRequest.Items[1].Price")
}

func TestCreateOrderRequest_Overflow(t *testing.T) {
	v := New()

	req := CreateOrderRequest{
		StoreID: 1,
		Items:   []Item{{MenuItemID: 1, Quantity: 2, Price: math.MaxInt64 / 2}, {MenuItemID: 2, Quantity: 1, Price: 10}},
	}
	assert.Error(t, v.Struct(req))

	req.Items = []Item{{MenuItemID: 1, Quantity: 3, Price: math.MaxInt64 / 2}}
	assert.Error(t, v.Struct(req))
}

func TestBindAndValidate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := New()

	cases := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"valid", `{"store_id":1,"items":[{"menu_item_id":101,"quantity":1,"price":60}],"language":"zh-TW"}`, true},
		{"empty items", `{"store_id":1,"items":[]}`, true},
		{"missing store", `{"items":[]}`, false},
		{"zero store", `{"store_id":0,"items":[]}`, false},
		{"items not array", `{"store_id":1,"items":"nope"}`, false},
		{"items missing", `{"store_id":1}`, false},
		{"items null", `{"store_id":1,"items":null}`, false},
		{"not json", `store_id=1`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var req CreateOrderRequest
			err := BindAndValidate(c, &req, v)
			if tc.wantOK {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"訂單資料格式錯誤"}`, w.Body.String())
		})
	}
}
