package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rpupo63/portfolio-backend/editbuffer"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/spf13/cobra"
)

func (a *app) skillsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "skills",
		Aliases: []string{"skill"},
		Short:   "List and edit skill categories",
	}
	cmd.AddCommand(a.skillsListCommand(), a.skillsAddCommand(), a.skillsEditCommand(), a.skillsDeleteCommand())
	return cmd
}

func (a *app) skillsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List skill categories with their skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			categories, err := a.client().ListSkillCategories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, "No skill categories.")
				return nil
			}
			for _, category := range categories {
				fmt.Fprintf(out, "%s (%s)\n", category.Title, category.ID)
				for _, skill := range category.Skills {
					fmt.Fprintf(out, "  %-24s %3d\n", skill.Name, skill.Level)
				}
			}
			return nil
		},
	}
}

func (a *app) skillsAddCommand() *cobra.Command {
	var title, names string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add skills to a category, creating it when needed",
		Long: `Appends comma separated skills at level 80 to the category with the given
title (matched ignoring case), or creates the category.

Example:
  portfolioctl skills add --title Languages --skills "Go, Rust"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			category, err := a.client().AddSkills(cmd.Context(), title, names)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d skills\n", category.Title, len(category.Skills))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "category title")
	cmd.Flags().StringVar(&names, "skills", "", "comma separated skill names")
	return cmd
}

func (a *app) skillsEditCommand() *cobra.Command {
	var (
		title   string
		sets    []string
		removes []string
		adds    []string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a category and change its skills in one save",
		Long: `Stages every change locally and saves the category once at the end.
Changes are applied in order: --title, --set, --remove, --add.

Example:
  portfolioctl skills edit 5f0c... --set Go=95 --remove Rust --add TypeScript --add Zig=40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			category, err := c.GetSkillCategory(cmd.Context(), id)
			if err != nil {
				return err
			}

			buf := editbuffer.NewSkillCategoryBuffer(category)
			if err = applySkillEdits(buf, cmd.Flags().Changed("title"), title, sets, removes, adds); err != nil {
				buf.Discard()
				return err
			}

			if !buf.Dirty() {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to change.")
				return nil
			}
			if err = buf.Flush(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d skills\n", buf.Title(), len(buf.Skills()))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new category title")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "name=level, change the level of an existing skill")
	cmd.Flags().StringArrayVar(&removes, "remove", nil, "name of a skill to remove")
	cmd.Flags().StringArrayVar(&adds, "add", nil, "name[=level], add a new skill (level 80 when omitted)")
	return cmd
}

// applySkillEdits stages the flag edits on buf. Skill names match ignoring case.
func applySkillEdits(buf *editbuffer.SkillCategoryBuffer, titleChanged bool, title string, sets, removes, adds []string) (err error) {
	if titleChanged {
		if err = buf.SetTitle(title); err != nil {
			return err
		}
	}

	for _, raw := range sets {
		name, level, hasLevel, err := parseSkillArg(raw)
		if err != nil {
			return err
		}
		if !hasLevel {
			return errors.Errorf("--set %q needs a level, e.g. %s=90", raw, name)
		}
		index := buf.IndexOf(name)
		if index < 0 {
			return errors.Errorf("no skill named %q in %s", name, buf.Title())
		}
		if err = buf.SetSkillLevel(index, level); err != nil {
			return errors.Wrapf(err, "--set %s", raw)
		}
	}

	for _, name := range removes {
		index := buf.IndexOf(name)
		if index < 0 {
			return errors.Errorf("no skill named %q in %s", name, buf.Title())
		}
		if err = buf.RemoveSkill(index); err != nil {
			return err
		}
	}

	for _, raw := range adds {
		name, level, hasLevel, err := parseSkillArg(raw)
		if err != nil {
			return err
		}
		index, err := buf.AppendSkill()
		if err != nil {
			return err
		}
		if err = buf.SetSkillName(index, name); err != nil {
			return err
		}
		if hasLevel {
			if err = buf.SetSkillLevel(index, level); err != nil {
				return errors.Wrapf(err, "--add %s", raw)
			}
		}
	}
	return nil
}

// parseSkillArg splits "name=level". The level is optional.
func parseSkillArg(raw string) (name string, level int, hasLevel bool, err error) {
	name, rawLevel, hasLevel := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		err = errors.Errorf("missing skill name in %q", raw)
		return name, level, hasLevel, err
	}
	if !hasLevel {
		return name, models.DefaultSkillLevel, false, nil
	}
	level, err = strconv.Atoi(strings.TrimSpace(rawLevel))
	if err != nil {
		err = errors.Errorf("invalid level in %q", raw)
	}
	return name, level, hasLevel, err
}

func (a *app) skillsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a skill category and all of its skills",
		Long: `Deletes a category together with its skills. Asks for a y/N confirmation
and then for the category title to be typed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c := a.client()
			category, err := c.GetSkillCategory(cmd.Context(), id)
			if err != nil {
				return err
			}

			p := newPrompter(cmd)
			ok, err := p.confirm(fmt.Sprintf("Delete %q and its %d skills?", category.Title, len(category.Skills)))
			if err != nil {
				return err
			}
			if !ok {
				return errAborted
			}
			if ok, err = p.confirmTyped(category.Title); err != nil {
				return err
			}
			if !ok {
				return errors.Wrap(errAborted, "title did not match")
			}

			if err = c.DeleteSkillCategory(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", category.Title)
			return nil
		},
	}
}
