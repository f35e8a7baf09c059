package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockledger/backend/internal/application/catalog"
	inventoryapp "github.com/stockledger/backend/internal/application/inventory"
	"github.com/stockledger/backend/internal/domain/catalog"
	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/infrastructure/persistence"
	"github.com/stockledger/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupProductRouter wires a product handler over an in-memory database
func setupProductRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Product{}, &ledger.Entry{}))

	productRepo := persistence.NewGormProductRepository(db)
	ledgerRepo := persistence.NewGormLedgerRepository(db)
	scope := persistence.NewGormTransactionScope(db)
	adjustments := inventoryapp.NewAdjustmentService(scope, ledgerRepo, nil)
	service := catalogapp.NewProductService(productRepo, adjustments, scope, nil)

	h := NewProductHandler(service)

	router := gin.New()
	router.POST("/products", h.Create)
	router.GET("/products", h.List)
	router.GET("/products/categories", h.ListCategories)
	router.GET("/products/export", h.Export)
	router.GET("/products/:id", h.GetByID)
	router.PUT("/products/:id", h.Update)
	router.DELETE("/products/:id", h.Delete)
	return router, db
}

func createProductJSON(name, sku, category string, quantity int64, price string) string {
	return fmt.Sprintf(`{"name":%q,"sku":%q,"category":%q,"quantity":%d,"price":%q}`,
		name, sku, category, quantity, price)
}

func postProduct(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("creates product and returns 201", func(t *testing.T) {
		router, db := setupProductRouter(t)

		w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", 10, "19.99"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "SKU-001", data["sku"])
		assert.Equal(t, float64(10), data["quantity"])

		// Initial stock lands in the ledger
		var count int64
		require.NoError(t, db.Model(&ledger.Entry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("zero initial quantity writes no ledger entry", func(t *testing.T) {
		router, db := setupProductRouter(t)

		w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", 0, "19.99"))
		require.Equal(t, http.StatusCreated, w.Code)

		var count int64
		require.NoError(t, db.Model(&ledger.Entry{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("duplicate SKU returns 409", func(t *testing.T) {
		router, _ := setupProductRouter(t)

		require.Equal(t, http.StatusCreated, postProduct(t, router,
			createProductJSON("Widget", "SKU-001", "Hardware", 10, "19.99")).Code)

		w := postProduct(t, router, createProductJSON("Other", "SKU-001", "Hardware", 5, "9.99"))
		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeDuplicateSku, resp.Error.Code)
	})

	t.Run("missing required fields returns 400", func(t *testing.T) {
		router, _ := setupProductRouter(t)

		w := postProduct(t, router, `{"name":"Widget"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative quantity returns 400", func(t *testing.T) {
		router, _ := setupProductRouter(t)

		w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", -5, "19.99"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_List(t *testing.T) {
	router, _ := setupProductRouter(t)

	for i := 1; i <= 5; i++ {
		category := "Hardware"
		if i > 3 {
			category = "Software"
		}
		w := postProduct(t, router, createProductJSON(
			fmt.Sprintf("Product %d", i),
			fmt.Sprintf("SKU-%03d", i),
			category, int64(i), "10.00"))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	t.Run("paginates with metadata", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?page=1&page_size=2", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		items := resp.Data.([]any)
		assert.Len(t, items, 2)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(5), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("beyond last page returns empty items with metadata", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?page=99&page_size=2", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		items := resp.Data.([]any)
		assert.Empty(t, items)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(5), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("filters by category", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?category=Software", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(2), resp.Meta.Total)
	})

	t.Run("search matches name and sku", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?search=SKU-003", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Meta.Total)
	})

	t.Run("sorts by quantity descending", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?sort_by=quantity&sort_order=desc", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		items := resp.Data.([]any)
		first := items[0].(map[string]any)
		assert.Equal(t, float64(5), first["quantity"])
	})

	t.Run("unknown sort field is ignored", func(t *testing.T) {
		query := url.Values{"sort_by": {"price;DROP TABLE products"}}
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products?"+query.Encode(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	router, _ := setupProductRouter(t)

	w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", 10, "19.99"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.(map[string]any)["id"].(string)

	t.Run("returns product", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/"+id, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "SKU-001", resp.Data.(map[string]any)["sku"])
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/"+uuid.NewString(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/products/not-a-uuid", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	router, db := setupProductRouter(t)

	w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", 10, "19.99"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.(map[string]any)["id"].(string)

	t.Run("quantity change is routed through the ledger", func(t *testing.T) {
		body := createProductJSON("Widget", "SKU-001", "Hardware", 15, "19.99")
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/products/"+id, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(15), resp.Data.(map[string]any)["quantity"])

		var entries []ledger.Entry
		require.NoError(t, db.Order("created_at").Find(&entries).Error)
		require.Len(t, entries, 2)
		last := entries[len(entries)-1]
		assert.Equal(t, ledger.ActionStockIncrease, last.Action)
		assert.Equal(t, int64(5), last.QuantityChange)
		assert.Equal(t, int64(10), last.PreviousQuantity)
		assert.Equal(t, int64(15), last.NewQuantity)
	})

	t.Run("unchanged quantity writes no entry", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&ledger.Entry{}).Count(&before).Error)

		body := createProductJSON("Widget Mk2", "SKU-001", "Hardware", 15, "24.99")
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/products/"+id, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var after int64
		require.NoError(t, db.Model(&ledger.Entry{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		body := createProductJSON("Widget", "SKU-002", "Hardware", 5, "9.99")
		w := httptest.NewRecorder()
		req := httptest.NewRequest("PUT", "/products/"+uuid.NewString(), bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_Delete(t *testing.T) {
	router, db := setupProductRouter(t)

	w := postProduct(t, router, createProductJSON("Widget", "SKU-001", "Hardware", 10, "19.99"))
	require.Equal(t, http.StatusCreated, w.Code)

	var created dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Data.(map[string]any)["id"].(string)

	t.Run("deletes and keeps ledger history", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/products/"+id, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		var productCount, entryCount int64
		require.NoError(t, db.Model(&catalog.Product{}).Count(&productCount).Error)
		require.NoError(t, db.Model(&ledger.Entry{}).Count(&entryCount).Error)
		assert.Equal(t, int64(0), productCount)
		assert.Equal(t, int64(1), entryCount)
	})

	t.Run("deleting again returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/products/"+id, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_ListCategories(t *testing.T) {
	router, _ := setupProductRouter(t)

	require.Equal(t, http.StatusCreated, postProduct(t, router,
		createProductJSON("A", "SKU-001", "Hardware", 1, "1.00")).Code)
	require.Equal(t, http.StatusCreated, postProduct(t, router,
		createProductJSON("B", "SKU-002", "Software", 1, "1.00")).Code)
	require.Equal(t, http.StatusCreated, postProduct(t, router,
		createProductJSON("C", "SKU-003", "Hardware", 1, "1.00")).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/categories", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	categories := resp.Data.(map[string]any)["categories"].([]any)
	assert.ElementsMatch(t, []any{"Hardware", "Software"}, categories)
}

func TestProductHandler_Export(t *testing.T) {
	router, _ := setupProductRouter(t)

	require.Equal(t, http.StatusCreated, postProduct(t, router,
		createProductJSON("Widget, Large", "SKU-001", "Hardware", 10, "19.99")).Code)
	require.Equal(t, http.StatusCreated, postProduct(t, router,
		createProductJSON("Gadget", "SKU-002", "Software", 5, "9.99")).Code)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/products/export", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,sku,category,quantity,price,supplier,description,status", lines[0])
	// Ordered by name; comma in name is quoted
	assert.True(t, strings.HasPrefix(lines[1], "Gadget,SKU-002"))
	assert.True(t, strings.HasPrefix(lines[2], `"Widget, Large",SKU-001`))
}
