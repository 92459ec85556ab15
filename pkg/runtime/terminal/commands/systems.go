package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/filter"
)

func NewSystemsCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "systems",
		Aliases: []string{"ai-systems"},
		Short:   "Manage the AI systems registry",
	}

	cmd.AddCommand(newSystemsListCmd(rt))
	cmd.AddCommand(newSystemsCreateCmd(rt))
	cmd.AddCommand(newSystemsUpdateCmd(rt))
	cmd.AddCommand(newSystemsDeleteCmd(rt))
	return cmd
}

func newSystemsListCmd(rt *Runtime) *cobra.Command {
	var (
		query filter.AiSystemQuery
		page  int
		out   output
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered AI systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			systems, err := rt.Client.GetAiSystems(cmd.Context())
			if err != nil {
				return err
			}

			matched := filter.AiSystems(systems, query)
			size := rt.Config.UI.ItemsPerPage
			shown := filter.Paginate(matched, page, size)
			if out.format == formatJSON {
				return out.write(rt, nil, shown)
			}

			details := make([]domain.ReportDetail, 0, len(shown))
			for _, s := range shown {
				details = append(details, domain.ReportDetail{
					Name:        fmt.Sprintf("(%s) %s", s.ID, s.Name),
					Value:       fmt.Sprintf("%s / %s", s.RiskLevel, s.Status),
					Description: fmt.Sprintf("%s. %s, owner %s", s.Purpose, s.Department, s.Owner),
				})
			}
			return out.write(rt, &domain.Report{
				Title: "AI Systems Registry",
				Sections: []domain.ReportSection{{
					Title: pageTitle(page, filter.Pages(len(matched), size), len(matched)),
					Summary: map[string]interface{}{
						"departments": joinOrDash(filter.Departments(systems)),
					},
					Details: details,
				}},
			}, shown)
		},
	}

	cmd.Flags().StringVar(&query.Search, "search", "", "Case-insensitive text to match")
	cmd.Flags().StringVar(&query.Department, "department", filter.All, "Department to show")
	cmd.Flags().StringVar(&query.RiskLevel, "risk", filter.All, "Risk level to show: Low, Medium, High")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	out.register(cmd)
	return cmd
}

type systemFlags struct {
	name        string
	purpose     string
	owner       string
	department  string
	risk        string
	status      string
	dataSources []string
}

func (f *systemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "System name")
	cmd.Flags().StringVar(&f.purpose, "purpose", "", "What the system is used for")
	cmd.Flags().StringVar(&f.owner, "owner", "", "Accountable owner")
	cmd.Flags().StringVar(&f.department, "department", "", "Owning department")
	cmd.Flags().StringVar(&f.risk, "risk", string(domain.RiskLevelLow), "Risk level: Low, Medium, High")
	cmd.Flags().StringVar(&f.status, "status", string(domain.SystemStatusInDevelopment), "Status: 'In Development' or Deployed")
	cmd.Flags().StringSliceVar(&f.dataSources, "data-source", nil, "Data source used by the system, repeatable")
}

// apply copies the flags set on cmd onto in. With all set, every flag is copied.
func (f *systemFlags) apply(cmd *cobra.Command, in *domain.AiSystemInput, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("name") {
		in.Name = f.name
	}
	if changed("purpose") {
		in.Purpose = f.purpose
	}
	if changed("owner") {
		in.Owner = f.owner
	}
	if changed("department") {
		in.Department = f.department
	}
	if changed("risk") {
		risk, err := oneOf("risk", f.risk, domain.RiskLevelLow, domain.RiskLevelMedium, domain.RiskLevelHigh)
		if err != nil {
			return err
		}
		in.RiskLevel = risk
	}
	if changed("status") {
		status, err := oneOf("status", f.status, domain.SystemStatusInDevelopment, domain.SystemStatusDeployed)
		if err != nil {
			return err
		}
		in.Status = status
	}
	if changed("data-source") {
		in.DataSources = f.dataSources
	}
	return nil
}

func newSystemsCreateCmd(rt *Runtime) *cobra.Command {
	var flags systemFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new AI system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.AiSystemInput
			if err := flags.apply(cmd, &in, true); err != nil {
				return err
			}
			created, err := rt.Client.CreateAiSystem(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created AI system %q with id %s\n", created.Name, created.ID)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSystemsUpdateCmd(rt *Runtime) *cobra.Command {
	var flags systemFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a registered AI system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			systems, err := rt.Client.GetAiSystems(cmd.Context())
			if err != nil {
				return err
			}
			var in *domain.AiSystemInput
			for _, s := range systems {
				if s.ID == id {
					in = &domain.AiSystemInput{
						Name: s.Name, Purpose: s.Purpose, Owner: s.Owner, Department: s.Department,
						RiskLevel: s.RiskLevel, Status: s.Status, DataSources: s.DataSources,
					}
					break
				}
			}
			if in == nil {
				return fmt.Errorf("ai system %q not found", id)
			}

			if err := flags.apply(cmd, in, false); err != nil {
				return err
			}
			updated, err := rt.Client.UpdateAiSystem(cmd.Context(), id, *in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated AI system %s\n", updated.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newSystemsDeleteCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an AI system from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.Client.DeleteAiSystem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportDeleted(cmd, "AI system", args[0], res)
		},
	}
}

func reportDeleted(cmd *cobra.Command, what, id string, res domain.DeleteResult) error {
	if !res.Success {
		return fmt.Errorf("%s %s was not deleted", what, id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", what, id)
	return nil
}
