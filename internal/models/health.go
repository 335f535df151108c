package models

// HealthReport is the body served by the health endpoint.
type HealthReport struct {
	Status             string `json:"status"`
	Version            string `json:"version"`
	DeepseekConfigured bool   `json:"deepseek_configured"`
}

// ProcessingStatus is the body served by the processing status endpoint.
type ProcessingStatus struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
	Message  string  `json:"message"`
}
