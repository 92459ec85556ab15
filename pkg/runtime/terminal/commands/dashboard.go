package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/models/domain"
)

func NewDashboardCmd(rt *Runtime) *cobra.Command {
	var out output
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the ISO 42001 compliance overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := rt.Client.GetDashboardData(cmd.Context())
			if err != nil {
				return err
			}
			if out.format == formatJSON {
				return out.write(rt, nil, d)
			}
			return out.write(rt, dashboardReport(d), d)
		},
	}
	out.register(cmd)
	return cmd
}

func dashboardReport(d domain.DashboardSnapshot) *domain.Report {
	systems := make([]domain.ReportDetail, 0, len(d.AiSystems))
	for _, s := range d.AiSystems {
		systems = append(systems, domain.ReportDetail{
			Name:        s.Name,
			Value:       fmt.Sprintf("%s / %s", s.RiskLevel, s.Status),
			Description: fmt.Sprintf("%s (%s)", s.Purpose, s.Department),
		})
	}

	return &domain.Report{
		Title: "ISO 42001 Compliance Dashboard",
		Sections: []domain.ReportSection{
			{
				Title: "Compliance",
				Summary: map[string]interface{}{
					"progress":          fmt.Sprintf("%d%% %s", d.ComplianceProgress, progressBar(d.ComplianceProgress, 20)),
					"iso sections":      strings.Join(d.IsoSections, ", "),
					"policy categories": strings.Join(d.PolicyCategories, ", "),
				},
			},
			{
				Title:   "AI Systems",
				Summary: map[string]interface{}{"registered": len(d.AiSystems)},
				Details: systems,
			},
			distributionSection(d.RiskDistribution),
		},
	}
}

func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
