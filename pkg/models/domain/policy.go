package domain

type Policy struct {
	ID          string         `json:"id" validate:"required"`
	Name        string         `json:"name" validate:"required"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Category    PolicyCategory `json:"category" validate:"omitempty,oneof=Ethics Privacy Bias Explainability Risk"`
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
}

type PolicyInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status,omitempty"`
	Category    PolicyCategory `json:"category"`
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
}

func (in PolicyInput) WithID(id string) Policy {
	return Policy{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Category:    in.Category,
		Version:     in.Version,
		LastUpdated: in.LastUpdated,
	}
}
