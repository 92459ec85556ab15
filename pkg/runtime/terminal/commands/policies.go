package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/models/domain"
	"github.com/de-tools/aims/pkg/services/config"
	"github.com/de-tools/aims/pkg/services/filter"
)

var policyCategories = []domain.PolicyCategory{
	domain.PolicyCategoryEthics,
	domain.PolicyCategoryPrivacy,
	domain.PolicyCategoryBias,
	domain.PolicyCategoryExplainability,
	domain.PolicyCategoryRisk,
}

func NewPoliciesCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Manage AI governance policies",
	}

	cmd.AddCommand(newPoliciesListCmd(rt))
	cmd.AddCommand(newPoliciesCreateCmd(rt))
	cmd.AddCommand(newPoliciesUpdateCmd(rt))
	cmd.AddCommand(newPoliciesDeleteCmd(rt))
	return cmd
}

func newPoliciesListCmd(rt *Runtime) *cobra.Command {
	var (
		query filter.PolicyQuery
		page  int
		out   output
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			policies, err := rt.Client.GetPolicies(cmd.Context())
			if err != nil {
				return err
			}

			matched := filter.Policies(policies, query)
			size := rt.Config.UI.ItemsPerPage
			shown := filter.Paginate(matched, page, size)
			if out.format == formatJSON {
				return out.write(rt, nil, shown)
			}

			details := make([]domain.ReportDetail, 0, len(shown))
			for _, p := range shown {
				details = append(details, domain.ReportDetail{
					Name:  fmt.Sprintf("(%s) %s", p.ID, p.Name),
					Value: fmt.Sprintf("%s v%s", p.Category, p.Version),
					Description: fmt.Sprintf("%s. Updated %s",
						p.Description, displayDate(p.LastUpdated, rt.Config.UI.DateFormat)),
				})
			}
			return out.write(rt, &domain.Report{
				Title: "Policies",
				Sections: []domain.ReportSection{{
					Title:   pageTitle(page, filter.Pages(len(matched), size), len(matched)),
					Summary: map[string]interface{}{"categories": joinOrDash(filter.Categories(policies))},
					Details: details,
				}},
			}, shown)
		},
	}

	cmd.Flags().StringVar(&query.Search, "search", "", "Case-insensitive text to match")
	cmd.Flags().StringVar(&query.Category, "category", filter.All, "Category to show")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	out.register(cmd)
	return cmd
}

type policyFlags struct {
	name        string
	description string
	status      string
	category    string
	version     string
	lastUpdated string
}

func (f *policyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Policy name")
	cmd.Flags().StringVar(&f.description, "description", "", "Policy description")
	cmd.Flags().StringVar(&f.status, "status", "", "Policy status, e.g. Active or Draft")
	cmd.Flags().StringVar(&f.category, "category", string(domain.PolicyCategoryEthics),
		"Category: Ethics, Privacy, Bias, Explainability, Risk")
	cmd.Flags().StringVar(&f.version, "version", "1.0", "Policy version")
	cmd.Flags().StringVar(&f.lastUpdated, "last-updated", time.Now().UTC().Format(config.DefaultDateFormat),
		"Date of the last revision, YYYY-MM-DD")
}

func (f *policyFlags) apply(cmd *cobra.Command, in *domain.PolicyInput, all bool) error {
	changed := func(name string) bool { return all || cmd.Flags().Changed(name) }

	if changed("name") {
		in.Name = f.name
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("status") {
		in.Status = f.status
	}
	if changed("category") {
		category, err := oneOf("category", f.category, policyCategories...)
		if err != nil {
			return err
		}
		in.Category = category
	}
	if changed("version") {
		in.Version = f.version
	}
	if changed("last-updated") {
		in.LastUpdated = f.lastUpdated
	}
	return nil
}

func newPoliciesCreateCmd(rt *Runtime) *cobra.Command {
	var flags policyFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in domain.PolicyInput
			if err := flags.apply(cmd, &in, true); err != nil {
				return err
			}
			created, err := rt.Client.CreatePolicy(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created policy %q with id %s\n", created.Name, created.ID)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPoliciesUpdateCmd(rt *Runtime) *cobra.Command {
	var flags policyFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			policies, err := rt.Client.GetPolicies(cmd.Context())
			if err != nil {
				return err
			}
			var in *domain.PolicyInput
			for _, p := range policies {
				if p.ID == id {
					in = &domain.PolicyInput{
						Name: p.Name, Description: p.Description, Status: p.Status,
						Category: p.Category, Version: p.Version, LastUpdated: p.LastUpdated,
					}
					break
				}
			}
			if in == nil {
				return fmt.Errorf("policy %q not found", id)
			}

			if err := flags.apply(cmd, in, false); err != nil {
				return err
			}
			updated, err := rt.Client.UpdatePolicy(cmd.Context(), id, *in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated policy %s\n", updated.ID)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newPoliciesDeleteCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rt.Client.DeletePolicy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return reportDeleted(cmd, "policy", args[0], res)
		},
	}
}
