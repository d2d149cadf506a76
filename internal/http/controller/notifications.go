package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/domain"
	"omni_notifications/internal/http/dto"
	"omni_notifications/internal/http/resp"
	"omni_notifications/internal/model"
	"omni_notifications/internal/service/notify"
	"omni_notifications/internal/ws"
)

type Handler struct {
	cfg      *config.Config
	svc      *notify.Service
	registry *ws.Registry
	log      *zap.Logger
}

func NewHandler(cfg *config.Config, svc *notify.Service, registry *ws.Registry, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, registry: registry, log: logger}
}

func (h *Handler) Health(c *gin.Context) {
	ingestion := "kafka"
	if len(h.cfg.KafkaBrokers) == 0 {
		ingestion = "disabled"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":                "healthy",
		"service":               "notification-service",
		"websocket_connections": h.registry.TotalConnections(),
		"ingestion":             ingestion,
	})
}

func (h *Handler) ListNotifications(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}

	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			page = n
		}
	}
	pageSize := h.cfg.DefaultPageSize
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			pageSize = n
		}
	}
	if pageSize > h.cfg.MaxPageSize {
		pageSize = h.cfg.MaxPageSize
	}
	category := c.Query("category")

	items, total, unread, err := h.svc.List(c.Request.Context(), accountID, page, pageSize, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list notifications"})
		return
	}
	if items == nil {
		items = []model.Notification{}
	}

	c.JSON(http.StatusOK, dto.ListNotificationsResponse{
		Notifications: items,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		UnreadCount:   unread,
	})
}

func (h *Handler) GetNotification(c *gin.Context) {
	notification, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to load notification"})
		return
	}
	if notification == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *Handler) MarkRead(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}

	ok, unread, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notification read"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
		return
	}
	c.JSON(http.StatusOK, dto.MarkReadResponse{Success: true, UnreadCount: unread})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}

	count, err := h.svc.MarkAllRead(c.Request.Context(), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, dto.MarkAllReadResponse{Success: true, ReadCount: count, UnreadCount: 0})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}

	ok, err := h.svc.Delete(c.Request.Context(), c.Param("id"), accountID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to delete notification"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "notification not found"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}

// CreateTestNotification creates a notification directly, bypassing the
// event stream. Meant for manual and end-to-end testing.
func (h *Handler) CreateTestNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	if req.AccountID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "account_id is required"})
		return
	}
	if !domain.IsValidKind(req.Kind) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "type must be one of: info, success, warning, action"})
		return
	}

	if req.Label == "" {
		req.Label = "Test Notification"
	}
	if req.Content == "" {
		req.Content = "This is a test notification"
	}
	if req.Category == "" {
		req.Category = "test"
	}
	if req.Kind == "" {
		req.Kind = domain.KindInfo
	}

	created, err := h.svc.Create(c.Request.Context(), model.Notification{
		AccountID: req.AccountID,
		Label:     req.Label,
		Content:   req.Content,
		Category:  req.Category,
		Kind:      req.Kind,
		Icon:      req.Icon,
		Priority:  req.Priority,
		ActionURL: req.ActionURL,
	})
	if err != nil {
		h.log.Error("create notification failed",
			zap.String("account_id", req.AccountID),
			zap.String("label", req.Label),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to create notification"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
