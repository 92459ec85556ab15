package mock

import "github.com/de-tools/aims/pkg/models/domain"

// Fixtures is the static sample data served in mock mode.
type Fixtures struct {
	Dashboard       domain.DashboardSnapshot
	AiSystems       []domain.AiSystem
	Policies        []domain.Policy
	Incidents       []domain.Incident
	RiskAssessments domain.RiskAssessments
}

func riskDistribution() []domain.RiskBucket {
	return []domain.RiskBucket{
		{Name: domain.SeverityLow, Total: 40},
		{Name: domain.SeverityMedium, Total: 30},
		{Name: domain.SeverityHigh, Total: 45},
		{Name: domain.SeverityCritical, Total: 10},
	}
}

// DefaultFixtures returns a fresh copy of the built-in sample data.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Dashboard: domain.DashboardSnapshot{
			ComplianceProgress: 40,
			IsoSections: []string{
				"Context", "Leadership", "Planning", "Support",
				"Operation", "Performance Evaluation", "Improvement",
			},
			AiSystems: []domain.SystemSummary{
				{Name: "Chatbot A", Purpose: "Customer support", Department: "Sales", RiskLevel: domain.RiskLevelHigh, Status: domain.SystemStatusDeployed},
				{Name: "Model B", Purpose: "Fraud detection", Department: "Finance", RiskLevel: domain.RiskLevelMedium, Status: domain.SystemStatusInDevelopment},
				{Name: "System C", Purpose: "Image recognition", Department: "R&D", RiskLevel: domain.RiskLevelLow, Status: domain.SystemStatusDeployed},
			},
			PolicyCategories: []string{"Bias", "Privacy", "Ethics", "Explainability"},
			RiskDistribution: riskDistribution(),
		},
		AiSystems: []domain.AiSystem{
			{
				ID: "1", Name: "Chatbot A", Purpose: "Customer support", Owner: "Sarah Johnson",
				Department: "Sales", RiskLevel: domain.RiskLevelHigh, Status: domain.SystemStatusDeployed,
				DataSources: []string{"Support tickets", "Product catalog"},
			},
			{
				ID: "2", Name: "Model B", Purpose: "Fraud detection", Owner: "Michael Chen",
				Department: "Finance", RiskLevel: domain.RiskLevelMedium, Status: domain.SystemStatusInDevelopment,
				DataSources: []string{"Transaction history", "Customer profiles"},
			},
			{
				ID: "3", Name: "System C", Purpose: "Image recognition", Owner: "Emily Wong",
				Department: "R&D", RiskLevel: domain.RiskLevelLow, Status: domain.SystemStatusDeployed,
				DataSources: []string{"Image archive"},
			},
			{
				ID: "4", Name: "Recommendation Engine", Purpose: "Product recommendations", Owner: "David Smith",
				Department: "Marketing", RiskLevel: domain.RiskLevelMedium, Status: domain.SystemStatusDeployed,
				DataSources: []string{"Purchase history", "Browsing behavior"},
			},
			{
				ID: "5", Name: "Sentiment Analyzer", Purpose: "Social media monitoring", Owner: "Alex Rodriguez",
				Department: "Marketing", RiskLevel: domain.RiskLevelLow, Status: domain.SystemStatusInDevelopment,
				DataSources: []string{"Social media posts"},
			},
		},
		Policies: []domain.Policy{
			{
				ID: "1", Name: "AI Ethics Guidelines", Description: "Principles for responsible development and use of AI systems",
				Status: "Active", Category: domain.PolicyCategoryEthics, Version: "2.1", LastUpdated: "2024-03-10",
			},
			{
				ID: "2", Name: "Data Privacy Policy", Description: "Handling of personal data used to train and operate AI systems",
				Status: "Active", Category: domain.PolicyCategoryPrivacy, Version: "1.4", LastUpdated: "2024-02-22",
			},
			{
				ID: "3", Name: "Bias Mitigation Procedure", Description: "Steps to detect and reduce bias in model outputs",
				Status: "Draft", Category: domain.PolicyCategoryBias, Version: "0.9", LastUpdated: "2024-04-02",
			},
			{
				ID: "4", Name: "Model Explainability Standard", Description: "Documentation required to explain automated decisions",
				Status: "Active", Category: domain.PolicyCategoryExplainability, Version: "1.0", LastUpdated: "2024-01-15",
			},
			{
				ID: "5", Name: "AI Risk Management Framework", Description: "Assessment and treatment of risks across the AI lifecycle",
				Status: "Under Review", Category: domain.PolicyCategoryRisk, Version: "3.0", LastUpdated: "2024-03-28",
			},
		},
		Incidents: []domain.Incident{
			{
				ID: "1", Title: "Biased Output in Recommendation System", Description: "Users reported gender bias in product recommendations",
				System: "Recommendation Engine", Severity: domain.SeverityHigh, Status: domain.IncidentStatusInvestigating,
				Reporter: "Emily Wong", DateReported: "2024-04-15", AssignedTo: "Michael Chen",
			},
			{
				ID: "2", Title: "Data Privacy Breach", Description: "Potential unauthorized access to customer data through AI system",
				System: "Chatbot A", Severity: domain.SeverityCritical, Status: domain.IncidentStatusOpen,
				Reporter: "David Smith", DateReported: "2024-04-10", AssignedTo: "Sarah Johnson",
			},
			{
				ID: "3", Title: "False Positives in Fraud Detection", Description: "Multiple legitimate transactions flagged as fraudulent",
				System: "Model B", Severity: domain.SeverityMedium, Status: domain.IncidentStatusResolved,
				Reporter: "Alex Rodriguez", DateReported: "2024-03-28", AssignedTo: "Michael Chen",
			},
			{
				ID: "4", Title: "System Downtime", Description: "AI system unavailable for 2 hours due to processing error",
				System: "System C", Severity: domain.SeverityLow, Status: domain.IncidentStatusResolved,
				Reporter: "Sarah Johnson", DateReported: "2024-03-15", AssignedTo: "David Smith",
			},
		},
		RiskAssessments: domain.RiskAssessments{
			Systems: []domain.SystemOption{
				{Value: "chatbot-a", Label: "Chatbot A"},
				{Value: "model-b", Label: "Model B"},
				{Value: "system-c", Label: "System C"},
				{Value: "recommendation-engine", Label: "Recommendation Engine"},
				{Value: "sentiment-analyzer", Label: "Sentiment Analyzer"},
			},
			Reports: []domain.RiskAssessment{
				{ID: "1", System: "Chatbot A", RiskLevel: domain.RiskLevelHigh, Date: "2024-03-15"},
				{ID: "2", System: "Model B", RiskLevel: domain.RiskLevelMedium, Date: "2024-02-20"},
				{ID: "3", System: "Recommendation Engine", RiskLevel: domain.RiskLevelLow, Date: "2024-01-10"},
			},
			RiskDistribution: riskDistribution(),
		},
	}
}
