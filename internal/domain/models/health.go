package models

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ServiceInfo is the liveness payload returned by GET /
type ServiceInfo struct {
	Service             string   `json:"service"`
	Status              string   `json:"status"`
	Version             string   `json:"version"`
	UptimeSeconds       int64    `json:"uptime_seconds"`
	SupportedExtensions []string `json:"supported_extensions"`
}
