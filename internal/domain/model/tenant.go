package model

// Tenant is a tenant directory entry. Database is the partition holding the tenant's scan jobs.
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Database string `json:"database"`
}
