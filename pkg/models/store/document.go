package store

import (
	"encoding/json"
	"time"
)

// Kind is the collection a stored document belongs to.
type Kind string

const (
	KindAiSystem       Kind = "ai_system"
	KindPolicy         Kind = "policy"
	KindIncident       Kind = "incident"
	KindRiskAssessment Kind = "risk_assessment"
	KindSetting        Kind = "setting"
)

// Document is one JSON encoded record of a collection.
type Document struct {
	Kind      Kind
	ID        string
	Body      json.RawMessage
	UpdatedAt time.Time
}

// ComplianceSettings is the dashboard state that is not derived from other records.
type ComplianceSettings struct {
	ComplianceProgress int      `json:"complianceProgress"`
	IsoSections        []string `json:"isoSections"`
}
