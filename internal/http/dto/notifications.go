package dto

import "omni_notifications/internal/model"

type CreateNotificationRequest struct {
	AccountID string `json:"account_id"`
	Label     string `json:"label"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Kind      string `json:"type"`
	Icon      string `json:"icon"`
	Priority  string `json:"priority"`
	ActionURL string `json:"action_url"`
}

type ListNotificationsResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int64                `json:"total"`
	Page          int                  `json:"page"`
	PageSize      int                  `json:"page_size"`
	UnreadCount   int64                `json:"unread_count"`
}

type MarkReadResponse struct {
	Success     bool  `json:"success"`
	UnreadCount int64 `json:"unread_count"`
}

type MarkAllReadResponse struct {
	Success     bool  `json:"success"`
	ReadCount   int   `json:"read_count"`
	UnreadCount int64 `json:"unread_count"`
}

type StatusResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
