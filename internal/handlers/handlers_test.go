package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/ordering-helper-mock/internal/catalog"
	"github.com/imrishuroy/ordering-helper-mock/internal/ids"
	"github.com/imrishuroy/ordering-helper-mock/internal/metrics"
	"github.com/imrishuroy/ordering-helper-mock/internal/ocr"
	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
)

const testOCRDelay = 30 * time.Millisecond

// 1x1 transparent PNG
const placeholderPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func newTestRouter(t *testing.T, ocrDelay time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := log.New()
	logger.SetOutput(io.Discard)
	entry := log.NewEntry(logger)

	cat := catalog.Default()
	gen := ids.NewClock(nil)

	r := gin.New()
	r.Use(Recovery(entry), RequestLogger(entry))
	RegisterRoutes(r, HandlerConfig{
		Catalog: cat,
		OCR:     ocr.NewSimulator(cat, gen, ocrDelay),
		Orders:  orders.NewService(gen, nil, entry),
		Metrics: metrics.NewWithRegisterer(prometheus.NewRegistry()),
		Logger:  entry,
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Mock backend is running"}`, w.Body.String())
}

func TestListStores(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/stores", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stores []catalog.Store
	decode(t, w, &stores)
	require.Len(t, stores, 3)
	assert.Equal(t, 1, stores[0].ID)
	assert.Equal(t, "A", stores[0].PartnerLevel)
	assert.Contains(t, w.Body.String(), `"store_name"`)
}

func TestGetStore(t *testing.T) {
	r := newTestRouter(t, 0)

	for _, id := range []int{1, 2, 3} {
		w := do(r, httptest.NewRequest(http.MethodGet, "/api/stores/"+strconv.Itoa(id), nil))
		require.Equal(t, http.StatusOK, w.Code)
		var s catalog.Store
		decode(t, w, &s)
		assert.Equal(t, id, s.ID)
	}

	for _, path := range []string{"/api/stores/999", "/api/stores/abc"} {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"店家不存在"}`, w.Body.String())
	}
}

func TestGetMenu(t *testing.T) {
	r := newTestRouter(t, 0)

	names := map[string]string{
		"zh-TW": "王阿嬤臭豆腐",
		"en-US": "Grandma Wang's Stinky Tofu",
		"ja-JP": "王おばあちゃんの臭豆腐",
		"ko-KR": "왕 할머니의 냄새나는 두부",
	}
	for lang, name := range names {
		w := do(r, httptest.NewRequest(http.MethodGet, "/api/menus/1?lang="+lang, nil))
		require.Equal(t, http.StatusOK, w.Code, lang)
		var m catalog.Menu
		decode(t, w, &m)
		assert.Equal(t, name, m.StoreName)
		assert.Len(t, m.Items, 3)
	}

	// default language
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/menus/2", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var m catalog.Menu
	decode(t, w, &m)
	assert.Equal(t, "王阿嬤臭豆腐", m.StoreName)
	assert.EqualValues(t, 101, m.Items[0].ID)
}

func TestGetMenu_Errors(t *testing.T) {
	r := newTestRouter(t, 0)

	cases := []struct {
		path string
		want string
	}{
		{"/api/menus/1?lang=fr-FR", `{"error":"不支援的語言"}`},
		{"/api/menus/999", `{"error":"店家不存在"}`},
		{"/api/menus/999?lang=fr-FR", `{"error":"店家不存在"}`},
		{"/api/menus/x", `{"error":"店家不存在"}`},
	}
	for _, tc := range cases {
		w := do(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.JSONEq(t, tc.want, w.Body.String(), tc.path)
	}
}

type ocrResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	MenuData catalog.Menu `json:"menu_data"`
}

func newUploadRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withImage {
		png, err := base64.StdEncoding.DecodeString(placeholderPNG)
		require.NoError(t, err)
		fw, err := mw.CreateFormFile("image", "menu.png")
		require.NoError(t, err)
		_, err = fw.Write(png)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-menu-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadMenuImage(t *testing.T) {
	r := newTestRouter(t, testOCRDelay)

	start := time.Now()
	w := do(r, newUploadRequest(t, map[string]string{"lang": "en-US", "store_id": "999"}, true))
	elapsed := time.Since(start)

	require.Equal(t, http.StatusOK, w.Code)
	assert.GreaterOrEqual(t, elapsed, testOCRDelay)

	var resp ocrResponse
	decode(t, w, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "OCR 辨識完成", resp.Message)
	assert.Equal(t, "店家 999", resp.MenuData.StoreName)
	require.Len(t, resp.MenuData.Items, 3)
	assert.Equal(t, "Beef Noodle Soup", resp.MenuData.Items[0].Name)
	assert.Equal(t, "OCR 辨識的菜單項目", resp.MenuData.Items[0].Description)

	seen := map[string]bool{}
	for _, it := range resp.MenuData.Items {
		id, ok := it.ID.(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(id, "ocr-"))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestUploadMenuImage_LenientLanguage(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, newUploadRequest(t, map[string]string{"lang": "fr-FR"}, true))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ocrResponse
	decode(t, w, &resp)
	require.Len(t, resp.MenuData.Items, 3)
	assert.Equal(t, "牛肉麵", resp.MenuData.Items[0].Name)

	// the same tag is rejected by the menu endpoint
	w = do(r, httptest.NewRequest(http.MethodGet, "/api/menus/1?lang=fr-FR", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadMenuImage_NoImage(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, newUploadRequest(t, map[string]string{"store_id": "2"}, false))
	require.Equal(t, http.StatusOK, w.Code)

	var resp ocrResponse
	decode(t, w, &resp)
	assert.Equal(t, "店家 2", resp.MenuData.StoreName)
	assert.Len(t, resp.MenuData.Items, 3)
}

func TestUploadMenuImage_ClientGone(t *testing.T) {
	r := newTestRouter(t, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := newUploadRequest(t, nil, true).WithContext(ctx)

	w := do(r, req)
	assert.Equal(t, statusClientClosedRequest, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestUploadMenuImage_DoesNotBlockOtherRequests(t *testing.T) {
	const delay = 500 * time.Millisecond
	srv := httptest.NewServer(newTestRouter(t, delay))
	defer srv.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		_ = mw.WriteField("lang", "zh-TW")
		_ = mw.Close()
		resp, err := http.Post(srv.URL+"/api/upload-menu-image", mw.FormDataContentType(), &body)
		if err == nil {
			resp.Body.Close()
		}
	}()

	// give the upload a moment to start waiting
	time.Sleep(50 * time.Millisecond)

	start := time.Now()
	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(start), delay/2)

	<-done
}

type orderResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Order   *orders.Order `json:"order"`
	Error   string        `json:"error"`
}

func postOrder(t *testing.T, r http.Handler, body string) (*httptest.ResponseRecorder, orderResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := do(r, req)

	var resp orderResponse
	decode(t, w, &resp)
	return w, resp
}

func TestCreateOrder_EndToEnd(t *testing.T) {
	r := newTestRouter(t, 0)

	w, resp := postOrder(t, r, `{"store_id":1,"items":[{"menu_item_id":101,"quantity":1,"price":60}],"language":"zh-TW"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "訂單建立成功", resp.Message)
	require.NotNil(t, resp.Order)
	assert.Equal(t, int64(60), resp.Order.TotalAmount)
	assert.Equal(t, 1, resp.Order.StoreID)
	assert.Equal(t, "zh-TW", resp.Order.Language)
	assert.NotEmpty(t, resp.Order.OrderID)

	_, err := time.Parse(time.RFC3339, resp.Order.CreatedAtTS)
	assert.NoError(t, err)
}

func TestCreateOrder_TotalIsOrderIndependent(t *testing.T) {
	r := newTestRouter(t, 0)

	_, a := postOrder(t, r, `{"store_id":1,"items":[{"menu_item_id":101,"quantity":2,"price":60},{"menu_item_id":102,"quantity":1,"price":50}]}`)
	_, b := postOrder(t, r, `{"store_id":1,"items":[{"menu_item_id":102,"quantity":1,"price":50},{"menu_item_id":101,"quantity":2,"price":60}]}`)

	require.NotNil(t, a.Order)
	require.NotNil(t, b.Order)
	assert.Equal(t, int64(170), a.Order.TotalAmount)
	assert.Equal(t, a.Order.TotalAmount, b.Order.TotalAmount)
	assert.NotEqual(t, a.Order.OrderID, b.Order.OrderID)
}

func TestCreateOrder_EmptyItemsAccepted(t *testing.T) {
	r := newTestRouter(t, 0)

	w, resp := postOrder(t, r, `{"store_id":2,"items":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Order)
	assert.Equal(t, int64(0), resp.Order.TotalAmount)
	assert.NotContains(t, w.Body.String(), `"language"`)
}

func TestCreateOrder_Rejected(t *testing.T) {
	r := newTestRouter(t, 0)

	bodies := []string{
		`{"items":[{"menu_item_id":101,"quantity":1,"price":60}]}`,
		`{"store_id":1,"items":"101"}`,
		`{"store_id":1}`,
		`{"store_id":1,"items":[{"menu_item_id":101,"quantity":0,"price":60}]}`,
		`not json`,
	}
	for _, body := range bodies {
		w, resp := postOrder(t, r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "訂單資料格式錯誤", resp.Error)
		assert.Nil(t, resp.Order)
		assert.NotContains(t, w.Body.String(), `"order"`)
	}
}

func TestNoRoute(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := log.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	r.Use(Recovery(log.NewEntry(logger)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
