package mock

import "github.com/de-tools/aims/pkg/models/domain"

// Copies keep callers from mutating the fixtures through shared slices.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneSystems(in []domain.AiSystem) []domain.AiSystem {
	if in == nil {
		return nil
	}
	out := make([]domain.AiSystem, len(in))
	for i, s := range in {
		s.DataSources = cloneStrings(s.DataSources)
		out[i] = s
	}
	return out
}

func cloneBuckets(in []domain.RiskBucket) []domain.RiskBucket {
	if in == nil {
		return nil
	}
	return append([]domain.RiskBucket{}, in...)
}

func cloneDashboard(in domain.DashboardSnapshot) domain.DashboardSnapshot {
	out := in
	out.IsoSections = cloneStrings(in.IsoSections)
	out.PolicyCategories = cloneStrings(in.PolicyCategories)
	if in.AiSystems != nil {
		out.AiSystems = append([]domain.SystemSummary{}, in.AiSystems...)
	}
	out.RiskDistribution = cloneBuckets(in.RiskDistribution)
	return out
}

func cloneRiskAssessments(in domain.RiskAssessments) domain.RiskAssessments {
	out := in
	if in.Systems != nil {
		out.Systems = append([]domain.SystemOption{}, in.Systems...)
	}
	if in.Reports != nil {
		out.Reports = append([]domain.RiskAssessment{}, in.Reports...)
	}
	out.RiskDistribution = cloneBuckets(in.RiskDistribution)
	return out
}
