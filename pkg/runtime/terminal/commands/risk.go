package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/models/domain"
)

var assessmentLevels = []domain.RiskLevel{
	domain.RiskLevelLow,
	domain.RiskLevelMedium,
	domain.RiskLevelHigh,
	domain.RiskLevelCritical,
}

func NewRiskCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "risk",
		Aliases: []string{"risk-assessments"},
		Short:   "Manage risk assessments",
	}

	cmd.AddCommand(newRiskListCmd(rt))
	cmd.AddCommand(newRiskCreateCmd(rt))
	cmd.AddCommand(newRiskUpdateCmd(rt))
	cmd.AddCommand(newRiskDeleteCmd(rt))
	return cmd
}

func newRiskListCmd(rt *Runtime) *cobra.Command {
	var out output
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show risk assessment reports and the risk distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			risk, err := rt.Client.GetRiskAssessments(cmd.Context())
			if err != nil {
				return err
			}
			if out.format == formatJSON {
				return out.write(rt, nil, risk)
			}

			reports := make([]domain.ReportDetail, 0, len(risk.Reports))
			for _, r := range risk.Reports {
				reports = append(reports, domain.ReportDetail{
					Name:        fmt.Sprintf("(%s) %s", r.ID, r.System),
					Value:       r.RiskLevel,
					Description: "Assessed " + displayDate(r.Date, rt.Config.UI.DateFormat),
				})
			}
			return out.write(rt, &domain.Report{
				Title: "Risk Assessments",
				Sections: []domain.ReportSection{
					{
						Title:   "Reports",
						Summary: map[string]interface{}{"systems available": len(risk.Systems)},
						Details: reports,
					},
					distributionSection(risk.RiskDistribution),
				},
			}, risk)
		},
	}
	out.register(cmd)
	return cmd
}

func distributionSection(buckets []domain.RiskBucket) domain.ReportSection {
	details := make([]domain.ReportDetail, 0, len(buckets))
	total := 0
	for _, b := range buckets {
		total += b.Total
		details = append(details, domain.ReportDetail{Name: string(b.Name), Value: b.Total})
	}
	return domain.ReportSection{
		Title:   "Risk Distribution",
		Summary: map[string]interface{}{"total": total},
		Details: details,
	}
}

type riskFlags struct {
	system string
	level  string
	date   string
}

func (f *riskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.system, "system", "", "Name of the assessed AI system")
	cmd.Flags().StringVar(&f.level, "level", string(domain.RiskLevelMedium), "Risk level: Low, Medium, High, Critical")
	cmd.Flags().StringVar(&f.date, "date", "", "Assessment date, YYYY-MM-DD")
}

func (f *riskFlags) apply(cmd *cobra.Command, in *domain.RiskAssessmentInput, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("system") {
		in.System = f.system
	}
	if changed("level") {
		level, err := oneOf("level", f.level, assessmentLevels...)
		if err != nil {
			return err
		}
		in.RiskLevel = level
	}
	if changed("date") {
		in.Date = f.date
	}
	return nil
}

func newRiskCreateCmd(rt *Runtime) *cobra.Command {
	var flags riskFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a risk assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.RiskAssessmentInput
			if err := flags.apply(cmd, &in, true); err != nil {
				return err
			}
			created, err := rt.Client.CreateRiskAssessment(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s risk assessment for %q with id %s\n",
				created.RiskLevel, created.System, created.ID)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("system")
	return cmd
}

func newRiskUpdateCmd(rt *Runtime) *cobra.Command {
	var flags riskFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a risk assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			risk, err := rt.Client.GetRiskAssessments(cmd.Context())
			if err != nil {
				return err
			}
			var in *domain.RiskAssessmentInput
			for _, r := range risk.Reports {
				if r.ID == id {
					in = &domain.RiskAssessmentInput{System: r.System, RiskLevel: r.RiskLevel, Date: r.Date}
					break
				}
			}
			if in == nil {
				return fmt.Errorf("risk assessment %q not found", id)
			}

			if err := flags.apply(cmd, in, false); err != nil {
				return err
			}
			updated, err := rt.Client.UpdateRiskAssessment(cmd.Context(), id, *in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated risk assessment %s\n", updated.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRiskDeleteCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a risk assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.Client.DeleteRiskAssessment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportDeleted(cmd, "risk assessment", args[0], res)
		},
	}
}
