package domain

// Incident is a reported malfunction or harm caused by an AI system.
// System holds the system name as free text, it is not a reference.
type Incident struct {
	ID           string         `json:"id" validate:"required"`
	Title        string         `json:"title" validate:"required"`
	Description  string         `json:"description"`
	System       string         `json:"system"`
	Severity     Severity       `json:"severity" validate:"omitempty,oneof=Low Medium High Critical"`
	Status       IncidentStatus `json:"status" validate:"omitempty,oneof=Open Investigating Resolved"`
	Reporter     string         `json:"reporter"`
	DateReported string         `json:"dateReported"`
	AssignedTo   string         `json:"assignedTo"`
}

type IncidentInput struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	System       string         `json:"system"`
	Severity     Severity       `json:"severity"`
	Status       IncidentStatus `json:"status"`
	Reporter     string         `json:"reporter"`
	DateReported string         `json:"dateReported"`
	AssignedTo   string         `json:"assignedTo"`
}

func (in IncidentInput) WithID(id string) Incident {
	return Incident{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		System:       in.System,
		Severity:     in.Severity,
		Status:       in.Status,
		Reporter:     in.Reporter,
		DateReported: in.DateReported,
		AssignedTo:   in.AssignedTo,
	}
}
