// Package cli implements portfolioctl, the admin command line for the
// portfolio API.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rpupo63/portfolio-backend/client"
	"github.com/spf13/cobra"
)

const (
	defaultServer = "http://localhost:8080/api"
	serverEnv     = "PORTFOLIO_SERVER"
	tokenEnv      = "PORTFOLIO_TOKEN"
)

// app carries the global flags into every subcommand.
type app struct {
	server string
	token  string

	newClient func(server, token string) *client.Client
}

func (a *app) client() *client.Client {
	return a.newClient(a.server, a.token)
}

// NewRootCommand builds the portfolioctl command tree. Options adjust the
// client construction.
func NewRootCommand(opts ...client.Option) (root *cobra.Command) {
	a := &app{
		newClient: func(server, token string) *client.Client {
			return client.New(server, append([]client.Option{client.WithToken(token)}, opts...)...)
		},
	}

	root = &cobra.Command{
		Use:   "portfolioctl",
		Short: "Manage portfolio content from the terminal",
		Long: `portfolioctl edits the projects, experience and skills served by the
portfolio backend.

Sign in with "portfolioctl login" and export the printed token as
PORTFOLIO_TOKEN (or pass --token) before running mutating commands.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.server, "server", envOr(serverEnv, defaultServer), "API base URL including the prefix (env "+serverEnv+")")
	root.PersistentFlags().StringVar(&a.token, "token", os.Getenv(tokenEnv), "bearer token for mutating commands (env "+tokenEnv+")")

	root.AddCommand(
		a.loginCommand(),
		a.projectsCommand(),
		a.experienceCommand(),
		a.skillsCommand(),
		a.leetcodeCommand(),
	)
	return root
}

// Execute runs portfolioctl with the process arguments.
func Execute() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
