package dto

import "negromart_seller/internal/models"

type NotificationListResponse struct {
	Page[models.Notification]
	UnreadCount int `json:"unread_count"`
}

type NotificationCriteria struct {
	Page     int
	PageSize int
	Unread   bool
}

type WSTokenResponse struct {
	Token string `json:"token"`
}
