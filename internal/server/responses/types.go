// Package responses defines API response types used by the HTTP handlers.
package responses

import "time"

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Store     string    `json:"store"`
	Error     string    `json:"error,omitempty"`
}

// MarkdownKeysResponse lists the Markdown artifact keys of a stage's active recipe.
type MarkdownKeysResponse struct {
	Stage         string   `json:"stage"`
	InstanceID    string   `json:"instance_id"`
	StepSource    string   `json:"step_source"`
	Keys          []string `json:"keys"`
	ParseFailures int      `json:"parse_failures,omitempty"`
}
