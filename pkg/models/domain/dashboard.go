package domain

// DashboardSnapshot aggregates the compliance overview shown on the home page.
type DashboardSnapshot struct {
	ComplianceProgress int             `json:"complianceProgress" validate:"gte=0,lte=100"`
	IsoSections        []string        `json:"isoSections"`
	AiSystems          []SystemSummary `json:"aiSystems" validate:"dive"`
	PolicyCategories   []string        `json:"policyCategories"`
	RiskDistribution   []RiskBucket    `json:"riskDistribution" validate:"dive"`
}
