package api

import "time"

type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

type ComponentStatus string

const (
	Connected     ComponentStatus = "connected"
	Disconnected  ComponentStatus = "disconnected"
	NotConfigured ComponentStatus = "not_configured"
)

type CircuitBreakerState string

const (
	Closed   CircuitBreakerState = "closed"
	HalfOpen CircuitBreakerState = "half-open"
	Open     CircuitBreakerState = "open"
)

type SchedulerStatus string

const (
	SchedulerRunning SchedulerStatus = "running"
	SchedulerStopped SchedulerStatus = "stopped"
)

type HealthResponse struct {
	Status               HealthStatus        `json:"status"`
	Timestamp            time.Time           `json:"timestamp"`
	SchedulerStatus      SchedulerStatus     `json:"scheduler_status,omitempty"`
	DatabaseStatus       ComponentStatus     `json:"database_status,omitempty"`
	RedisStatus          ComponentStatus     `json:"redis_status,omitempty"`
	CircuitBreakerStatus string              `json:"circuit_breaker_status,omitempty"`
	CircuitBreakerState  CircuitBreakerState `json:"circuit_breaker_state,omitempty"`
}

type SchedulerAction string

const (
	SchedulerActionStarted SchedulerAction = "started"
	SchedulerActionStopped SchedulerAction = "stopped"
)

type SchedulerResponse struct {
	Status  SchedulerAction `json:"status"`
	Message string          `json:"message"`
}
