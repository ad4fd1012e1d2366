package cli

import (
	"fmt"

	"github.com/rpupo63/portfolio-backend/client"
	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		Long: `Signs in with an admin account and prints the token to use for
mutating commands. Missing credentials are asked for on the terminal.

Example:
  export PORTFOLIO_TOKEN=$(portfolioctl login --email admin@example.com --quiet)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			quiet, _ := cmd.Flags().GetBool("quiet")
			p := newPrompter(cmd)
			if email == "" {
				if email, err = p.ask("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = p.ask("Password: "); err != nil {
					return err
				}
			}

			c := a.client()
			session := client.NewSession(c)
			user, err := session.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if quiet {
				fmt.Fprintln(out, c.Token())
				return nil
			}
			fmt.Fprintf(out, "Signed in as %s (%s)\n", user.Email, user.Role)
			if !session.CanEdit() {
				fmt.Fprintln(out, "This account cannot edit content.")
			}
			fmt.Fprintf(out, "export %s=%s\n", tokenEnv, c.Token())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolP("quiet", "q", false, "print only the token")
	return cmd
}
