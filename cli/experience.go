package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rpupo63/portfolio-backend/editbuffer"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/spf13/cobra"
)

type experienceFields struct {
	title        string
	company      string
	location     string
	period       string
	startDate    string
	endDate      string
	description  string
	iconURL      string
	achievements []string
}

func (f *experienceFields) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "role title")
	flags.StringVar(&f.company, "company", "", "company name")
	flags.StringVar(&f.location, "location", "", "location")
	flags.StringVar(&f.period, "period", "", `display period, e.g. "2021 - Present"`)
	flags.StringVar(&f.startDate, "start-date", "", "start date")
	flags.StringVar(&f.endDate, "end-date", "", "end date")
	flags.StringVar(&f.description, "description", "", "description")
	flags.StringVar(&f.iconURL, "icon-url", "", "company icon URL (empty clears it)")
	flags.StringArrayVar(&f.achievements, "achievement", nil, "achievement, repeat for several (replaces the list on edit)")
}

func (a *app) experienceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experience",
		Short: "List and edit work experience",
	}
	cmd.AddCommand(a.experienceListCommand(), a.experienceAddCommand(), a.experienceEditCommand(), a.experienceDeleteCommand())
	return cmd
}

func (a *app) experienceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List experience entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			entries, err := a.client().ListExperience(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No experience entries.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tPERIOD")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.ID, entry.Title, entry.Company, entry.Period)
			}
			return w.Flush()
		},
	}
}

func (a *app) experienceAddCommand() *cobra.Command {
	var fields experienceFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an experience entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			req := models.CreateExperienceRequest{
				Title:        fields.title,
				Company:      fields.company,
				Location:     fields.location,
				Period:       fields.period,
				StartDate:    fields.startDate,
				EndDate:      fields.endDate,
				Description:  fields.description,
				Achievements: models.ParseLines(strings.Join(fields.achievements, "\n")),
			}
			if fields.iconURL != "" {
				req.IconURL = &fields.iconURL
			}
			if err = req.Validate(); err != nil {
				return err
			}

			entry, err := a.client().CreateExperience(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created experience %s at %s (%s)\n", entry.Title, entry.Company, entry.ID)
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func (a *app) experienceEditCommand() *cobra.Command {
	var fields experienceFields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of an experience entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			entry, err := c.GetExperience(cmd.Context(), id)
			if err != nil {
				return err
			}

			buf := editbuffer.NewExperienceBuffer(entry)
			flags := cmd.Flags()
			setters := []struct {
				flag  string
				value string
				set   func(string) error
			}{
				{"title", fields.title, buf.SetTitle},
				{"company", fields.company, buf.SetCompany},
				{"location", fields.location, buf.SetLocation},
				{"period", fields.period, buf.SetPeriod},
				{"start-date", fields.startDate, buf.SetStartDate},
				{"end-date", fields.endDate, buf.SetEndDate},
				{"description", fields.description, buf.SetDescription},
				{"icon-url", fields.iconURL, buf.SetIconURL},
				{"achievement", strings.Join(fields.achievements, "\n"), buf.SetAchievementsText},
			}
			for _, s := range setters {
				if !flags.Changed(s.flag) {
					continue
				}
				if err = s.set(s.value); err != nil {
					return err
				}
			}

			if !buf.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}
			if err = buf.Flush(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated experience %s\n", id)
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func (a *app) experienceDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an experience entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			entry, err := c.GetExperience(cmd.Context(), id)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := newPrompter(cmd).confirm(fmt.Sprintf("Delete %s at %s?", entry.Title, entry.Company))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			if err = c.DeleteExperience(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted experience %s at %s\n", entry.Title, entry.Company)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
