package domain

// AiSystem is an entry of the AI systems registry.
type AiSystem struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name" validate:"required"`
	Purpose     string       `json:"purpose"`
	Owner       string       `json:"owner"`
	Department  string       `json:"department"`
	RiskLevel   RiskLevel    `json:"riskLevel" validate:"omitempty,oneof=Low Medium High"`
	Status      SystemStatus `json:"status" validate:"omitempty,oneof='In Development' Deployed"`
	DataSources []string     `json:"dataSources"`
}

// AiSystemInput is an AiSystem without its server assigned id.
type AiSystemInput struct {
	Name        string       `json:"name"`
	Purpose     string       `json:"purpose"`
	Owner       string       `json:"owner"`
	Department  string       `json:"department"`
	RiskLevel   RiskLevel    `json:"riskLevel"`
	Status      SystemStatus `json:"status"`
	DataSources []string     `json:"dataSources"`
}

func (in AiSystemInput) WithID(id string) AiSystem {
	return AiSystem{
		ID:          id,
		Name:        in.Name,
		Purpose:     in.Purpose,
		Owner:       in.Owner,
		Department:  in.Department,
		RiskLevel:   in.RiskLevel,
		Status:      in.Status,
		DataSources: in.DataSources,
	}
}

// SystemSummary is the reduced system card shown on the dashboard.
type SystemSummary struct {
	Name       string       `json:"name" validate:"required"`
	Purpose    string       `json:"purpose"`
	Department string       `json:"department"`
	RiskLevel  RiskLevel    `json:"riskLevel" validate:"omitempty,oneof=Low Medium High"`
	Status     SystemStatus `json:"status" validate:"omitempty,oneof='In Development' Deployed"`
}

func (s AiSystem) Summary() SystemSummary {
	return SystemSummary{
		Name:       s.Name,
		Purpose:    s.Purpose,
		Department: s.Department,
		RiskLevel:  s.RiskLevel,
		Status:     s.Status,
	}
}

// DeleteResult acknowledges a deletion.
type DeleteResult struct {
	Success bool `json:"success"`
}
