package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/infra"
	"storefront/internal/mocks"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret    = "secret"
	testProductID = "65a1b2c3d4e5f60718293a4b"
	testOrderID   = "65a1b2c3d4e5f60718293a4c"
)

var testAdmin = config.AdminConfig{Username: "admin", Password: "admin123"}

type fixture struct {
	products *mocks.MockProductRepository
	orders   *mocks.MockOrderRepository
	gateway  *mocks.MockPaymentGateway
	pub      *mocks.MockPublisher
	handler  *Handler
	router   *gin.Engine
}

// newFixture wires real services over mocked repositories. The payment
// service gets a real gateway client so signatures are checked for real;
// pass useMockGateway to stub the gateway instead.
func newFixture(useMockGateway bool) *fixture {
	gin.SetMode(gin.TestMode)

	f := &fixture{
		products: new(mocks.MockProductRepository),
		orders:   new(mocks.MockOrderRepository),
		gateway:  new(mocks.MockPaymentGateway),
		pub:      new(mocks.MockPublisher),
	}
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	var gateway infra.PaymentGatewayInterface = infra.NewRazorpayClient("http://127.0.0.1:0", "key", testSecret, "INR", time.Second)
	if useMockGateway {
		gateway = f.gateway
	}

	deg := services.NewDegradations()
	resolver := services.NewProductResolver(f.products, deg)
	f.handler = NewHandler(
		services.NewProductService(f.products, resolver),
		services.NewOrderService(f.orders, resolver, f.pub),
		services.NewPaymentService(gateway, resolver, f.orders, f.pub, deg, "INR"),
		services.NewDashboardService(f.products, f.orders, deg),
		services.NewSeeder(f.products),
	)

	f.router = gin.New()
	f.handler.RegisterRoutes(f.router, AdminAuth(testAdmin))
	return f
}

func (f *fixture) do(method, path string, body any, admin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.SetBasicAuth(testAdmin.Username, testAdmin.Password)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(false)
	w := f.do(http.MethodGet, "/health", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth(t *testing.T) {
	f := newFixture(false)

	w := f.do(http.MethodGet, "/orders", nil, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Admin Area"`, w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Unauthorized", decode(t, w)["error"])

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.SetBasicAuth("admin", "wrong")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	f.orders.On("List", mock.Anything).Return([]domain.Order{}, nil)
	w = f.do(http.MethodGet, "/orders", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_BcryptHash(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", AdminAuth(config.AdminConfig{Username: "ops", Password: "ignored", PasswordHash: string(hash)}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for _, tt := range []struct {
		user, pass string
		code       int
	}{
		{"ops", "s3cret", http.StatusNoContent},
		{"ops", "ignored", http.StatusUnauthorized},
		{"admin", "s3cret", http.StatusUnauthorized},
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.SetBasicAuth(tt.user, tt.pass)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tt.code, w.Code, "%s:%s", tt.user, tt.pass)
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("fallback product", func(t *testing.T) {
		f := newFixture(false)
		f.orders.On("Save", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = testOrderID
		})

		w := f.do(http.MethodPost, "/orders", CreateOrderRequest{
			Name: "Asha", Email: "asha@example.com", Mobile: "9999999999",
			ProductID: "2", Amount: 399, OrderID: "order_1",
		}, false)

		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, testOrderID, body["_id"])
		assert.Equal(t, "500+ Excel Sheet Templates", body["productName"])
		assert.Equal(t, false, body["isPaid"])
	})

	t.Run("missing field", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodPost, "/orders", CreateOrderRequest{Name: "Asha"}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "email is required", decode(t, w)["error"])
	})

	t.Run("constraint violation", func(t *testing.T) {
		f := newFixture(false)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(&repository.ConstraintError{Details: []string{"_id: duplicate key"}})

		w := f.do(http.MethodPost, "/orders", CreateOrderRequest{
			Name: "Asha", Email: "asha@example.com", Mobile: "9999999999",
			Product: "1", Amount: 399, OrderID: "order_1",
		}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Failed to create order: Validation error", body["error"])
		assert.Equal(t, []any{"_id: duplicate key"}, body["details"])
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(false)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		w := f.do(http.MethodPost, "/orders", CreateOrderRequest{
			Name: "Asha", Email: "asha@example.com", Mobile: "9999999999",
			Product: "1", Amount: 399, OrderID: "order_1",
		}, false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to create order", decode(t, w)["error"])
	})
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newFixture(false)
	f.orders.On("FindByID", mock.Anything, testOrderID).Return(nil, nil)

	w := f.do(http.MethodGet, "/orders/"+testOrderID, nil, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", decode(t, w)["error"])
}

func TestUpdateOrder_RequiresPaymentID(t *testing.T) {
	f := newFixture(false)
	w := f.do(http.MethodPut, "/orders/"+testOrderID, UpdateOrderRequest{}, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment ID is required", decode(t, w)["error"])
}

func TestCreatePaymentOrder(t *testing.T) {
	t.Run("missing product id", func(t *testing.T) {
		f := newFixture(true)
		w := f.do(http.MethodPost, "/payment/create-order", CreatePaymentOrderRequest{}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Product ID is required", decode(t, w)["error"])
	})

	t.Run("fallback product in paise", func(t *testing.T) {
		f := newFixture(true)
		f.gateway.On("CreateOrder", mock.Anything, int64(399)).Return(&infra.GatewayOrder{ID: "order_ABC"}, nil)

		w := f.do(http.MethodPost, "/payment/create-order", CreatePaymentOrderRequest{ProductID: "2"}, false)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "order_ABC", body["orderId"])
		assert.Equal(t, float64(39900), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "500+ Excel Sheet Templates", body["product_name"])
		assert.Equal(t, "2", body["product_id"])
	})

	t.Run("gateway failure", func(t *testing.T) {
		f := newFixture(true)
		f.gateway.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, infra.ErrGatewayFailure)

		w := f.do(http.MethodPost, "/payment/create-order", CreatePaymentOrderRequest{ProductID: "1"}, false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to create payment order", decode(t, w)["error"])
	})
}

func TestVerifyPayment(t *testing.T) {
	signature := infra.Sign(testSecret, "order_ABC", "pay_XYZ")

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodPost, "/payment/verify", VerifyPaymentRequest{PaymentID: "pay_XYZ"}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required payment verification fields", decode(t, w)["error"])
	})

	t.Run("invalid signature leaves order unpaid", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodPost, "/payment/verify", VerifyPaymentRequest{
			PaymentID: "pay_XYZ", OrderID: "order_ABC", Signature: "deadbeef" + signature[8:], OrderDBID: testOrderID,
		}, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid payment signature", decode(t, w)["error"])
		f.orders.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("valid signature marks order paid", func(t *testing.T) {
		f := newFixture(false)
		f.orders.On("MarkPaid", mock.Anything, testOrderID, "pay_XYZ").Return(&domain.Order{
			ID: testOrderID, PaymentID: "pay_XYZ", IsPaid: true, ProductName: "AI Reels Bundle", GatewayOrderID: "order_ABC",
		}, nil)

		w := f.do(http.MethodPost, "/payment/verify", VerifyPaymentRequest{
			PaymentID: "pay_XYZ", OrderID: "order_ABC", Signature: signature, OrderDBID: testOrderID,
		}, false)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Nil(t, body["degraded"])
		order := body["order"].(map[string]any)
		assert.Equal(t, true, order["isPaid"])
		assert.Equal(t, "pay_XYZ", order["paymentId"])
	})

	t.Run("unknown order is synthesized", func(t *testing.T) {
		f := newFixture(false)
		f.orders.On("MarkPaid", mock.Anything, testOrderID, "pay_XYZ").Return(nil, nil)

		w := f.do(http.MethodPost, "/payment/verify", VerifyPaymentRequest{
			PaymentID: "pay_XYZ", OrderID: "order_ABC", Signature: signature, OrderDBID: testOrderID, ProductID: "3",
		}, false)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["degraded"])
		order := body["order"].(map[string]any)
		assert.Equal(t, testOrderID, order["_id"])
		assert.Equal(t, true, order["isPaid"])
		assert.Equal(t, false, order["persisted"])
		assert.Equal(t, "Instagram Growth Mastery Course", order["product"].(map[string]any)["name"])
	})
}

func TestProducts(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		f := newFixture(false)
		f.products.On("List", mock.Anything).Return([]domain.Product{{ID: testProductID, Name: "Planner"}}, nil)

		w := f.do(http.MethodGet, "/products", nil, false)

		require.Equal(t, http.StatusOK, w.Code)
		var out []domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Len(t, out, 1)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodGet, "/products/abc", nil, false)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Product not found", decode(t, w)["error"])
	})

	t.Run("create requires admin", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodPost, "/products", CreateProductRequest{Name: "x"}, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create validates", func(t *testing.T) {
		f := newFixture(false)
		w := f.do(http.MethodPost, "/products", CreateProductRequest{Name: "x"}, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "description is required", decode(t, w)["error"])
	})

	t.Run("delete unknown", func(t *testing.T) {
		f := newFixture(false)
		f.products.On("Delete", mock.Anything, testProductID).Return(false, nil)
		w := f.do(http.MethodDelete, "/products/"+testProductID, nil, true)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDashboardAndSeed(t *testing.T) {
	f := newFixture(false)
	f.products.On("Count", mock.Anything).Return(int64(3), nil)
	f.orders.On("CountPaid", mock.Anything).Return(int64(1), nil)
	f.orders.On("SumPaidAmount", mock.Anything).Return(int64(399), nil)
	f.orders.On("ListRecentPaid", mock.Anything, 5).Return([]domain.Order{}, nil)

	w := f.do(http.MethodGet, "/admin/dashboard", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].(map[string]any)
	assert.Equal(t, float64(3), stats["totalProducts"])
	assert.Equal(t, float64(399), stats["totalSales"])

	w = f.do(http.MethodGet, "/seed", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["seeded"])
}

func TestPersistedOrderCarriesProduct(t *testing.T) {
	product := &domain.Product{ID: testProductID, Name: "Planner", DriveLink: "https://drive.example.com/planner"}
	ref := testProductID
	paid := &domain.Order{
		ID: testOrderID, PaymentID: "pay_XYZ", IsPaid: true, GatewayOrderID: "order_ABC",
		ProductRef: &ref, ProductName: "Planner", Product: product,
	}

	f := newFixture(false)
	f.orders.On("MarkPaid", mock.Anything, testOrderID, "pay_XYZ").Return(paid, nil)
	f.orders.On("FindByID", mock.Anything, testOrderID).Return(paid, nil)

	w := f.do(http.MethodPost, "/payment/verify", VerifyPaymentRequest{
		PaymentID: "pay_XYZ", OrderID: "order_ABC", Signature: infra.Sign(testSecret, "order_ABC", "pay_XYZ"), OrderDBID: testOrderID,
	}, false)
	require.Equal(t, http.StatusOK, w.Code)
	order := decode(t, w)["order"].(map[string]any)
	require.IsType(t, map[string]any{}, order["product"])
	assert.Equal(t, "https://drive.example.com/planner", order["product"].(map[string]any)["driveLink"])
	assert.Equal(t, testProductID, order["productRef"])

	w = f.do(http.MethodGet, "/orders/"+testOrderID, nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	require.IsType(t, map[string]any{}, body["product"])
	assert.Equal(t, "https://drive.example.com/planner", body["product"].(map[string]any)["driveLink"])
}

func TestProductListCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	f := newFixture(false)
	f.handler.SetRedisClient(rdb)
	f.products.On("List", mock.Anything).Return([]domain.Product{{ID: testProductID, Name: "Planner"}}, nil)
	f.products.On("Save", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	first := f.do(http.MethodGet, "/products", nil, false)
	second := f.do(http.MethodGet, "/products", nil, false)

	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.True(t, mr.Exists(productListCacheKey))
	f.products.AssertNumberOfCalls(t, "List", 1)

	w := f.do(http.MethodPost, "/products", CreateProductRequest{
		Name: "Course", Description: "d", OriginalPrice: 499, DiscountedPrice: 399,
		DriveLink: "https://drive.example.com/course", ImageURL: "/images/course.jpg",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, mr.Exists(productListCacheKey))

	f.do(http.MethodGet, "/products", nil, false)
	f.products.AssertNumberOfCalls(t, "List", 2)
}
