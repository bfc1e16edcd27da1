package model

// RestartTarget identifies a scan job to restart.
type RestartTarget struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id,omitempty"`
	Domain   string `json:"domain,omitempty"`
}

// RestartResult is the outcome reported by restart operations.
type RestartResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RestartedJobs int    `json:"restarted_jobs"`
}
