package domain

import "time"

// AuditFields holds standard audit information for domain entities. Actor
// ids are opaque strings supplied by the caller; this core records who did
// what but never authorizes.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActor is the audit identity used by background jobs such as the
// overdue sweep.
const SystemActor = "system"
