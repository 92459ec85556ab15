package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/filter"
)

func NewIncidentsCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incidents",
		Short: "Track AI incidents",
	}

	cmd.AddCommand(newIncidentsListCmd(rt))
	cmd.AddCommand(newIncidentsCreateCmd(rt))
	cmd.AddCommand(newIncidentsUpdateCmd(rt))
	cmd.AddCommand(newIncidentsDeleteCmd(rt))
	return cmd
}

func newIncidentsListCmd(rt *Runtime) *cobra.Command {
	var (
		query filter.IncidentQuery
		page  int
		out   output
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reported incidents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			incidents, err := rt.Client.GetIncidents(cmd.Context())
			if err != nil {
				return err
			}

			matched := filter.Incidents(incidents, query)
			size := rt.Config.UI.ItemsPerPage
			shown := filter.Paginate(matched, page, size)
			if out.format == formatJSON {
				return out.write(rt, nil, shown)
			}

			open := 0
			for _, i := range incidents {
				if i.Status != domain.IncidentStatusResolved {
					open++
				}
			}
			details := make([]domain.ReportDetail, 0, len(shown))
			for _, i := range shown {
				details = append(details, domain.ReportDetail{
					Name:  fmt.Sprintf("(%s) %s", i.ID, i.Title),
					Value: fmt.Sprintf("%s / %s", i.Severity, i.Status),
					Description: fmt.Sprintf("%s, reported %s by %s, assigned to %s",
						i.System, displayDate(i.DateReported, rt.Config.UI.DateFormat), i.Reporter, i.AssignedTo),
				})
			}
			return out.write(rt, &domain.Report{
				Title: "Incidents",
				Sections: []domain.ReportSection{{
					Title:   pageTitle(page, filter.Pages(len(matched), size), len(matched)),
					Summary: map[string]interface{}{"unresolved": open},
					Details: details,
				}},
			}, shown)
		},
	}

	cmd.Flags().StringVar(&query.Search, "search", "", "Case-insensitive text to match")
	cmd.Flags().StringVar(&query.Status, "status", filter.All, "Status to show: Open, Investigating, Resolved")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	out.register(cmd)
	return cmd
}

type incidentFlags struct {
	title        string
	description  string
	system       string
	severity     string
	status       string
	reporter     string
	dateReported string
	assignedTo   string
}

func (f *incidentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Incident title")
	cmd.Flags().StringVar(&f.description, "description", "", "What happened")
	cmd.Flags().StringVar(&f.system, "system", "", "Name of the affected AI system")
	cmd.Flags().StringVar(&f.severity, "severity", string(domain.SeverityMedium), "Severity: Low, Medium, High, Critical")
	cmd.Flags().StringVar(&f.status, "status", string(domain.IncidentStatusOpen), "Status: Open, Investigating, Resolved")
	cmd.Flags().StringVar(&f.reporter, "reporter", "", "Who reported the incident")
	cmd.Flags().StringVar(&f.dateReported, "date", "", "Date reported, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.assignedTo, "assignee", "", "Who handles the incident")
}

func (f *incidentFlags) apply(cmd *cobra.Command, in *domain.IncidentInput, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("title") {
		in.Title = f.title
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("system") {
		in.System = f.system
	}
	if changed("severity") {
		severity, err := oneOf("severity", f.severity, domain.Severities...)
		if err != nil {
			return err
		}
		in.Severity = severity
	}
	if changed("status") {
		status, err := oneOf("status", f.status,
			domain.IncidentStatusOpen, domain.IncidentStatusInvestigating, domain.IncidentStatusResolved)
		if err != nil {
			return err
		}
		in.Status = status
	}
	if changed("reporter") {
		in.Reporter = f.reporter
	}
	if changed("date") {
		in.DateReported = f.dateReported
	}
	if changed("assignee") {
		in.AssignedTo = f.assignedTo
	}
	return nil
}

func newIncidentsCreateCmd(rt *Runtime) *cobra.Command {
	var flags incidentFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Report an incident",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.IncidentInput
			if err := flags.apply(cmd, &in, true); err != nil {
				return err
			}
			created, err := rt.Client.CreateIncident(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reported incident %q with id %s\n", created.Title, created.ID)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newIncidentsUpdateCmd(rt *Runtime) *cobra.Command {
	var flags incidentFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			incidents, err := rt.Client.GetIncidents(cmd.Context())
			if err != nil {
				return err
			}
			var in *domain.IncidentInput
			for _, i := range incidents {
				if i.ID == id {
					in = &domain.IncidentInput{
						Title: i.Title, Description: i.Description, System: i.System, Severity: i.Severity,
						Status: i.Status, Reporter: i.Reporter, DateReported: i.DateReported, AssignedTo: i.AssignedTo,
					}
					break
				}
			}
			if in == nil {
				return fmt.Errorf("incident %q not found", id)
			}

			if err := flags.apply(cmd, in, false); err != nil {
				return err
			}
			updated, err := rt.Client.UpdateIncident(cmd.Context(), id, *in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated incident %s\n", updated.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newIncidentsDeleteCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an incident",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.Client.DeleteIncident(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportDeleted(cmd, "incident", args[0], res)
		},
	}
}
