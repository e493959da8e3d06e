package service

import "github.com/dialdesk/dialdesk/internal/api"

// InboundMessage is a provider-originated SMS delivered to the inbound
// webhook after signature and field validation.
type InboundMessage struct {
	From       string
	Body       string
	MessageSID string
}

// DeliveryStatus is a provider delivery receipt.
type DeliveryStatus struct {
	MessageSID   string
	Status       string
	ErrorCode    string
	ErrorMessage string
}

type HealthStatus struct {
	Status               api.HealthStatus        `json:"status"`
	SchedulerStatus      api.SchedulerStatus     `json:"scheduler_status"`
	DatabaseStatus       api.ComponentStatus     `json:"database_status"`
	RedisStatus          api.ComponentStatus     `json:"redis_status"`
	CircuitBreakerStatus string                  `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  api.CircuitBreakerState `json:"circuit_breaker_state,omitempty"`
}
