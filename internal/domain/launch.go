package domain

import "fmt"

type LaunchStatus struct {
	InstanceID string
	Text       string
	Status     NotificationStatus
}

type LaunchRequest struct {
	Instance Instance
	Runtime  RuntimeConfig
}

// LaunchNotificationKey is the notification key that tracks a launch of the given instance.
func LaunchNotificationKey(instanceID string) string {
	return fmt.Sprintf("%s_status", instanceID)
}
