package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"sentinel-service/internal/service"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orderService     *service.OrderService
	paymentService   *service.PaymentService
	inventoryService *service.InventoryService
	financeService   *service.FinanceService
	noteService      *service.NoteService
	statsService     *service.StatsService
	rateService      *service.RateService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orderService *service.OrderService,
	paymentService *service.PaymentService,
	inventoryService *service.InventoryService,
	financeService *service.FinanceService,
	noteService *service.NoteService,
	statsService *service.StatsService,
	rateService *service.RateService,
) *Handler {
	return &Handler{
		orderService:     orderService,
		paymentService:   paymentService,
		inventoryService: inventoryService,
		financeService:   financeService,
		noteService:      noteService,
		statsService:     statsService,
		rateService:      rateService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)

		v1.POST("/orders/:id/payments", h.recordPayment)
		v1.GET("/orders/:id/payments", h.listPayments)
		v1.DELETE("/payments/:id", h.deletePayment)

		v1.POST("/inventory", h.createInventoryItem)
		v1.GET("/inventory", h.listInventoryItems)
		v1.GET("/inventory/summary", h.inventorySummary)
		v1.PUT("/inventory/:id", h.updateInventoryItem)
		v1.POST("/inventory/:id/adjust", h.adjustStock)
		v1.DELETE("/inventory/:id", h.deleteInventoryItem)

		v1.POST("/transactions", h.recordTransaction)
		v1.GET("/transactions", h.listTransactions)
		v1.GET("/finance/summary", h.financeSummary)

		v1.POST("/notes", h.createNote)
		v1.GET("/notes", h.listNotes)
		v1.PUT("/notes/:id", h.updateNote)
		v1.DELETE("/notes/:id", h.deleteNote)

		v1.GET("/stats", h.getStats)
		v1.GET("/debts", h.getDebts)
		v1.GET("/calendar", h.getCalendar)
		v1.GET("/exchange-rate", h.getExchangeRate)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// createOrder handles order creation
func (h *Handler) createOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// listOrders handles listing all orders with payments
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// updateOrder handles order edits
func (h *Handler) updateOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// deleteOrder handles order deletion
func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment handles payment creation against an order
func (h *Handler) recordPayment(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// listPayments handles listing payments of an order
func (h *Handler) listPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// deletePayment handles payment deletion
func (h *Handler) deletePayment(c *gin.Context) {
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

// createInventoryItem handles stock item creation
func (h *Handler) createInventoryItem(c *gin.Context) {
	var req service.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create inventory item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// listInventoryItems handles stock listing with optional search
func (h *Handler) listInventoryItems(c *gin.Context) {
	items, err := h.inventoryService.ListItems(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to list inventory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// inventorySummary handles the stock value summary
func (h *Handler) inventorySummary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute inventory summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// updateInventoryItem handles stock item edits
func (h *Handler) updateInventoryItem(c *gin.Context) {
	var req service.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// adjustStock handles relative stock adjustments
func (h *Handler) adjustStock(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, err, "Failed to adjust stock")
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteInventoryItem handles stock item deletion
func (h *Handler) deleteInventoryItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete inventory item")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordTransaction handles investment/withdrawal creation
func (h *Handler) recordTransaction(c *gin.Context) {
	var req service.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	tx, err := h.financeService.RecordTransaction(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// listTransactions handles transaction listing
func (h *Handler) listTransactions(c *gin.Context) {
	txs, err := h.financeService.ListTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

// financeSummary handles the money-position summary
func (h *Handler) financeSummary(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load orders")
		return
	}

	summary, err := h.financeService.Summary(c.Request.Context(), orders)
	if err != nil {
		respondError(c, err, "Failed to compute financial summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// createNote handles note creation
func (h *Handler) createNote(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create note")
		return
	}
	c.JSON(http.StatusCreated, note)
}

// listNotes handles note listing
func (h *Handler) listNotes(c *gin.Context) {
	notes, err := h.noteService.ListNotes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// updateNote handles note edits
func (h *Handler) updateNote(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// deleteNote handles note deletion
func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.noteService.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete note")
		return
	}
	c.Status(http.StatusNoContent)
}

// getStats handles period statistics
func (h *Handler) getStats(c *gin.Context) {
	period := c.DefaultQuery("period", service.PeriodMonth)

	stats, err := h.statsService.Stats(c.Request.Context(), period)
	if err != nil {
		respondError(c, err, "Failed to compute stats")
		return
	}

	resp := gin.H{"stats": stats}
	if rate, err := h.rateService.GetRate(c.Request.Context()); err == nil && rate.IsPositive() {
		resp["exchange_rate"] = rate
	}

	c.JSON(http.StatusOK, resp)
}

// getDebts handles the customer debt summary
func (h *Handler) getDebts(c *gin.Context) {
	debts, err := h.statsService.CustomerDebts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute customer debts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer_debts": debts})
}

// getCalendar handles the payment-due calendar for a month
func (h *Handler) getCalendar(c *gin.Context) {
	monthStr := c.DefaultQuery("month", time.Now().Format("2006-01"))
	month, err := time.Parse("2006-01", monthStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
		return
	}

	calendar, err := h.statsService.Calendar(c.Request.Context(), month.Year(), month.Month())
	if err != nil {
		respondError(c, err, "Failed to compute calendar")
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": monthStr, "days": calendar})
}

// getExchangeRate handles the exchange rate lookup
func (h *Handler) getExchangeRate(c *gin.Context) {
	rate, err := h.rateService.GetRate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
