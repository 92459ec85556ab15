package domain

type RiskAssessment struct {
	ID        string    `json:"id" validate:"required"`
	System    string    `json:"system" validate:"required"`
	RiskLevel RiskLevel `json:"riskLevel" validate:"omitempty,oneof=Low Medium High Critical"`
	Date      string    `json:"date"`
}

type RiskAssessmentInput struct {
	System    string    `json:"system"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Date      string    `json:"date"`
}

func (in RiskAssessmentInput) WithID(id string) RiskAssessment {
	return RiskAssessment{
		ID:        id,
		System:    in.System,
		RiskLevel: in.RiskLevel,
		Date:      in.Date,
	}
}

// RiskBucket is one bar of a risk distribution chart.
type RiskBucket struct {
	Name  Severity `json:"name" validate:"required"`
	Total int      `json:"total" validate:"gte=0"`
}

// SystemOption is a selectable system in the assessment wizard.
type SystemOption struct {
	Value string `json:"value" validate:"required"`
	Label string `json:"label" validate:"required"`
}

// RiskAssessments is the payload of the risk assessments resource.
type RiskAssessments struct {
	Systems          []SystemOption   `json:"systems" validate:"dive"`
	Reports          []RiskAssessment `json:"reports" validate:"dive"`
	RiskDistribution []RiskBucket     `json:"riskDistribution" validate:"dive"`
}

// Distribution counts assessments per severity bucket, all buckets present.
func Distribution(reports []RiskAssessment) []RiskBucket {
	counts := make(map[Severity]int, len(Severities))
	for _, r := range reports {
		counts[Severity(r.RiskLevel)]++
	}
	buckets := make([]RiskBucket, 0, len(Severities))
	for _, s := range Severities {
		buckets = append(buckets, RiskBucket{Name: s, Total: counts[s]})
	}
	return buckets
}
