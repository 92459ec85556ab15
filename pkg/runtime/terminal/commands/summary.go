package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/aims/pkg/models/domain"
)

type governanceSummary struct {
	Dashboard       domain.DashboardSnapshot `json:"dashboard"`
	AiSystems       []domain.AiSystem        `json:"aiSystems"`
	Policies        []domain.Policy          `json:"policies"`
	Incidents       []domain.Incident        `json:"incidents"`
	RiskAssessments domain.RiskAssessments   `json:"riskAssessments"`
}

func NewSummaryCmd(rt *Runtime) *cobra.Command {
	var out output
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch every resource at once and show the totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var s governanceSummary

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				s.Dashboard, err = rt.Client.GetDashboardData(ctx)
				return err
			})
			g.Go(func() (err error) {
				s.AiSystems, err = rt.Client.GetAiSystems(ctx)
				return err
			})
			g.Go(func() (err error) {
				s.Policies, err = rt.Client.GetPolicies(ctx)
				return err
			})
			g.Go(func() (err error) {
				s.Incidents, err = rt.Client.GetIncidents(ctx)
				return err
			})
			g.Go(func() (err error) {
				s.RiskAssessments, err = rt.Client.GetRiskAssessments(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if out.format == formatJSON {
				return out.write(rt, nil, s)
			}
			return out.write(rt, summaryReport(s), s)
		},
	}
	out.register(cmd)
	return cmd
}

func summaryReport(s governanceSummary) *domain.Report {
	byRisk := make(map[domain.RiskLevel]int)
	for _, sys := range s.AiSystems {
		byRisk[sys.RiskLevel]++
	}
	byStatus := make(map[domain.IncidentStatus]int)
	for _, i := range s.Incidents {
		byStatus[i.Status]++
	}

	return &domain.Report{
		Title: "Governance Summary",
		Sections: []domain.ReportSection{{
			Title: "Totals",
			Summary: map[string]interface{}{
				"compliance progress": s.Dashboard.ComplianceProgress,
			},
			Details: []domain.ReportDetail{
				{Name: "AI systems", Value: len(s.AiSystems), Description: "high risk: " + strconv.Itoa(byRisk[domain.RiskLevelHigh])},
				{Name: "Policies", Value: len(s.Policies)},
				{
					Name:  "Incidents",
					Value: len(s.Incidents),
					Description: "open: " + strconv.Itoa(byStatus[domain.IncidentStatusOpen]) +
						", investigating: " + strconv.Itoa(byStatus[domain.IncidentStatusInvestigating]),
				},
				{Name: "Risk assessments", Value: len(s.RiskAssessments.Reports)},
			},
		}},
	}
}
