package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const productListCacheKey = "products:all"

type Handler struct {
	products  *services.ProductService
	orders    *services.OrderService
	payments  *services.PaymentService
	dashboard *services.DashboardService
	seeder    *services.Seeder
	rdb       *redis.Client
}

func NewHandler(
	products *services.ProductService,
	orders *services.OrderService,
	payments *services.PaymentService,
	dashboard *services.DashboardService,
	seeder *services.Seeder,
) *Handler {
	return &Handler{
		products:  products,
		orders:    orders,
		payments:  payments,
		dashboard: dashboard,
		seeder:    seeder,
	}
}

// SetRedisClient enables the product list cache.
func (h *Handler) SetRedisClient(rdb *redis.Client) {
	h.rdb = rdb
}

func (h *Handler) RegisterRoutes(r *gin.Engine, admin gin.HandlerFunc) {
	r.GET("/health", h.Health)

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", admin, h.CreateProduct)
	r.PUT("/products/:id", admin, h.UpdateProduct)
	r.DELETE("/products/:id", admin, h.DeleteProduct)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", admin, h.ListOrders)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/:id", h.UpdateOrder)
	r.DELETE("/orders/:id", admin, h.DeleteOrder)

	payment := r.Group("/payment")
	payment.POST("/create-order", h.CreatePaymentOrder)
	payment.POST("/verify", h.VerifyPayment)

	r.GET("/admin/dashboard", admin, h.Dashboard)
	r.GET("/seed", admin, h.Seed)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func badBody(c *gin.Context, err error) {
	log.Printf("bad request body on %s: %v", c.FullPath(), err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		b, err := h.rdb.Get(ctx, productListCacheKey).Result()
		if err == nil {
			var products []domain.Product
			if json.Unmarshal([]byte(b), &products) == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		}
	}

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		writeError(c, err, "fetch products")
		return
	}

	if h.rdb != nil {
		data, _ := json.Marshal(products)
		h.rdb.Set(ctx, productListCacheKey, data, 10*time.Second)
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) dropProductList() {
	if h.rdb == nil {
		return
	}
	h.rdb.Del(context.Background(), productListCacheKey)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	p, err := h.products.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "create product")
		return
	}
	h.dropProductList()
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	p, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		writeError(c, err, "update product")
		return
	}
	h.dropProductList()
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "delete product")
		return
	}
	h.dropProductList()
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "create order")
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context())
	if err != nil {
		writeError(c, err, "fetch orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetOrderById(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "fetch order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	order, err := h.orders.AttachPayment(c.Request.Context(), c.Param("id"), req.PaymentID)
	if err != nil {
		writeError(c, err, "update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	out, err := h.payments.CreatePaymentOrder(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err, "create payment order")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	out, err := h.payments.VerifyPayment(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err, "verify payment")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err, "fetch dashboard")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) Seed(c *gin.Context) {
	seeded, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		writeError(c, err, "seed products")
		return
	}
	if !seeded {
		c.JSON(http.StatusOK, SeedResponse{Seeded: false, Message: "Products already exist"})
		return
	}
	h.dropProductList()
	c.JSON(http.StatusOK, SeedResponse{Seeded: true, Message: "Products seeded successfully"})
}
