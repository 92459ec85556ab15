package domain

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"

	// RiskLevelCritical is only used by risk assessments.
	RiskLevelCritical RiskLevel = "Critical"
)

type SystemStatus string

const (
	SystemStatusInDevelopment SystemStatus = "In Development"
	SystemStatusDeployed      SystemStatus = "Deployed"
)

type PolicyCategory string

const (
	PolicyCategoryEthics         PolicyCategory = "Ethics"
	PolicyCategoryPrivacy        PolicyCategory = "Privacy"
	PolicyCategoryBias           PolicyCategory = "Bias"
	PolicyCategoryExplainability PolicyCategory = "Explainability"
	PolicyCategoryRisk           PolicyCategory = "Risk"
)

// Severity grades incidents and the buckets of a risk distribution.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Severities lists the risk distribution buckets in display order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "Open"
	IncidentStatusInvestigating IncidentStatus = "Investigating"
	IncidentStatusResolved      IncidentStatus = "Resolved"
)
