package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"fundfolio/internal/database"
	"fundfolio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	txnSvc   *service.TransactionService
	adminSvc *service.AdminService
	log      *logrus.Logger
}

func NewHandler(txnSvc *service.TransactionService, adminSvc *service.AdminService, log *logrus.Logger) *Handler {
	return &Handler{txnSvc: txnSvc, adminSvc: adminSvc, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	txn := r.Group("/v1/api/transactions")
	txn.POST("/buy", h.Buy)
	txn.POST("/redeem", h.Redeem)
	txn.GET("/portfolio/:userId", h.GetPortfolio)
	txn.GET("/history/:userId", h.GetHistory)

	admin := r.Group("/v1/api/admin")
	admin.POST("/scripts", h.CreateScript)
	admin.POST("/scripts/:fundCode/nav", h.AddNav)
	admin.POST("/users/register", h.RegisterUser)
	admin.GET("/users", h.ListUsers)
	admin.DELETE("/users/:userId", h.DeleteUser)
}

// writeError maps the error taxonomy onto status codes: missing entities are
// 404, business-rule violations 400, everything else 500. Insufficient-unit
// failures additionally report the available quantity.
func (h *Handler) writeError(c *gin.Context, err error) {
	var insufficient *service.InsufficientUnitsError
	switch {
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     insufficient.Error(),
			"available": insufficient.Available.String(),
		})
	case database.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case database.IsConflict(err), service.IsInvalidOperation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

type TradeRequest struct {
	UserID   int64  `json:"user_id" binding:"required"`
	ScriptID int64  `json:"script_id" binding:"required"`
	Amount   string `json:"amount"`
	Units    string `json:"units"`
}

func (h *Handler) Buy(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid buy body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount format"})
		return
	}

	if err := h.txnSvc.Buy(c.Request.Context(), req.UserID, req.ScriptID, amount); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "bought"})
}

func (h *Handler) Redeem(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid redeem body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	units, err := decimal.NewFromString(req.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid units format"})
		return
	}

	if err := h.txnSvc.Redeem(c.Request.Context(), req.UserID, req.ScriptID, units); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "redeemed"})
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	view, err := h.txnSvc.Portfolio(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetHistory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	txns, err := h.txnSvc.History(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

type CreateScriptRequest struct {
	FundCode string `json:"fund_code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	AMC      string `json:"amc"`
}

func (h *Handler) CreateScript(c *gin.Context) {
	var req CreateScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	script, err := h.adminSvc.CreateScript(c.Request.Context(), req.FundCode, req.Name, req.Category, req.AMC)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, script)
}

type NavRequest struct {
	NavValue string `json:"nav_value" binding:"required"`
}

func (h *Handler) AddNav(c *gin.Context) {
	var req NavRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	value, err := decimal.NewFromString(req.NavValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid nav value format"})
		return
	}
	nav, err := h.adminSvc.AddNavForToday(c.Request.Context(), c.Param("fundCode"), value)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, nav)
}

type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.adminSvc.RegisterUser(c.Request.Context(), req.Username, req.Password, database.Role(req.Role))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "role": user.Role})
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.adminSvc.ListUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.adminSvc.DeleteUser(c.Request.Context(), userID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
