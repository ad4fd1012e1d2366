package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/editbuffer"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/spf13/cobra"
)

// projectFields are the editable project flags shared by add and edit.
type projectFields struct {
	title        string
	description  string
	image        string
	link         string
	github       string
	technologies string
}

func (f *projectFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "project title")
	cmd.Flags().StringVar(&f.description, "description", "", "project description")
	cmd.Flags().StringVar(&f.image, "image", "", "image URL (empty clears it)")
	cmd.Flags().StringVar(&f.link, "link", "", "live site URL (empty clears it)")
	cmd.Flags().StringVar(&f.github, "github", "", "repository URL (empty clears it)")
	cmd.Flags().StringVar(&f.technologies, "technologies", "", `comma separated technologies, e.g. "Go, React"`)
}

func (a *app) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List and edit projects",
	}
	cmd.AddCommand(a.projectsListCommand(), a.projectsAddCommand(), a.projectsEditCommand(), a.projectsDeleteCommand())
	return cmd
}

func (a *app) projectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			projects, err := a.client().ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTECHNOLOGIES")
			for _, project := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\n", project.ID, project.Title, models.JoinTechnologies(project.Technologies))
			}
			return w.Flush()
		},
	}
}

func (a *app) projectsAddCommand() *cobra.Command {
	var fields projectFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			req := models.CreateProjectRequest{
				Title:        fields.title,
				Description:  fields.description,
				Technologies: models.ParseTechnologies(fields.technologies),
			}
			if fields.image != "" {
				req.Image = &fields.image
			}
			if fields.link != "" {
				req.Link = &fields.link
			}
			if fields.github != "" {
				req.Github = &fields.github
			}
			if err = req.Validate(); err != nil {
				return err
			}

			project, err := a.client().CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", project.Title, project.ID)
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func (a *app) projectsEditCommand() *cobra.Command {
	var fields projectFields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the given fields of a project",
		Long: `Changes only the fields passed as flags and saves them in one request.

Example:
  portfolioctl projects edit 5f0c... --title "New title" --technologies "Go, HTMX"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			project, err := c.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			buf := editbuffer.NewProjectBuffer(project)
			flags := cmd.Flags()
			setters := []struct {
				flag  string
				value string
				set   func(string) error
			}{
				{"title", fields.title, buf.SetTitle},
				{"description", fields.description, buf.SetDescription},
				{"image", fields.image, buf.SetImage},
				{"link", fields.link, buf.SetLink},
				{"github", fields.github, buf.SetGithub},
				{"technologies", fields.technologies, buf.SetTechnologiesText},
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
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", id)
			return nil
		},
	}
	fields.register(cmd)
	return cmd
}

func (a *app) projectsDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			project, err := c.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			if !yes {
				ok, err := newPrompter(cmd).confirm(fmt.Sprintf("Delete project %q?", project.Title))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			if err = c.DeleteProject(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", project.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func parseID(raw string) (id uuid.UUID, err error) {
	id, err = uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		err = errors.Errorf("invalid id %q", raw)
	}
	return id, err
}
