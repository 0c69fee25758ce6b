package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/client"
)

var (
	serverURL string
	token     string
)

func newClient() *client.Client {
	return client.New(serverURL, client.WithToken(token))
}

func requireToken(cmd *cobra.Command, args []string) error {
	if token == "" {
		return fmt.Errorf("no token: pass --token or set TASK_TRACKER_TOKEN (see `task-tracker login`)")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func credentialsCommand(use, short string, call func(c *client.Client, cmd *cobra.Command, username, password string) error) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("TASK_TRACKER_PASSWORD")
			}
			return call(newClient(), cmd, username, password)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (or TASK_TRACKER_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

var registerCmd = credentialsCommand("register", "Create an account and print its token",
	func(c *client.Client, cmd *cobra.Command, username, password string) error {
		res, err := c.Register(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s\nexport TASK_TRACKER_TOKEN=%s\n", res.User.Username, res.AccessToken)
		return nil
	})

var loginCmd = credentialsCommand("login", "Log in and print a bearer token",
	func(c *client.Client, cmd *cobra.Command, username, password string) error {
		res, err := c.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\nexport TASK_TRACKER_TOKEN=%s\n", res.User.Username, res.AccessToken)
		return nil
	})

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the account the token belongs to",
	PreRunE: requireToken,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := newClient().Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("TASK_TRACKER_SERVER", "http://127.0.0.1:8080"), "task tracker API base URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("TASK_TRACKER_TOKEN"), "bearer token")

	rootCmd.AddCommand(registerCmd, loginCmd, whoamiCmd)
}
