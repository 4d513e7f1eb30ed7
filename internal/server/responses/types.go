// Package responses defines API response types used by docsroute HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
	Groups    int       `json:"groups"`
	Versions  int       `json:"versions"`
	LoadedAt  time.Time `json:"loaded_at"`
}

// CatalogResponse lists the loaded documentation groups and their navigation.
type CatalogResponse struct {
	Groups   []versioning.Group `json:"groups"`
	Sidebars map[string]string  `json:"sidebars"`
	LoadedAt time.Time          `json:"loaded_at"`
}
