package domain

import "time"

type NotificationStatus string

const (
	NotificationRunning NotificationStatus = "running"
	NotificationSuccess NotificationStatus = "success"
	NotificationError   NotificationStatus = "error"
)

func (s NotificationStatus) Terminal() bool {
	return s == NotificationSuccess || s == NotificationError
}

func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationRunning, NotificationSuccess, NotificationError:
		return true
	default:
		return false
	}
}

type Notification struct {
	Key       string             `json:"id"`
	Message   string             `json:"contents"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}
