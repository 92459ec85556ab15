package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewAuthCmd(rt *Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API token kept in the credentials file",
	}

	cmd.AddCommand(newLoginCmd(rt))
	cmd.AddCommand(newLogoutCmd(rt))
	cmd.AddCommand(newStatusCmd(rt))
	return cmd
}

func newLoginCmd(rt *Runtime) *cobra.Command {
	var token, refresh string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an API token; read from stdin when --token is omitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("token is empty")
			}

			auth := rt.Config.API.Auth
			if err := rt.Creds.Set(auth.TokenKey, token); err != nil {
				return err
			}
			if refresh != "" {
				if err := rt.Creds.Set(auth.RefreshTokenKey, refresh); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved to %s\n", auth.CredentialsPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Bearer token for the governance API")
	cmd.Flags().StringVar(&refresh, "refresh-token", "", "Refresh token to keep alongside")
	return cmd
}

func newLogoutCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := rt.Config.API.Auth
			for _, key := range []string{auth.TokenKey, auth.RefreshTokenKey} {
				if err := rt.Creds.Delete(key); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newStatusCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			mode := "remote " + rt.Config.API.BaseURL
			if rt.Config.API.UseMockData {
				mode = "mock data"
			}
			fmt.Fprintf(w, "Backend: %s\n", mode)

			if _, ok := rt.Creds.Lookup(rt.Config.API.Auth.TokenKey); ok {
				fmt.Fprintf(w, "Logged in, token stored in %s\n", rt.Config.API.Auth.CredentialsPath)
				return nil
			}
			fmt.Fprintln(w, "Not logged in")
			return nil
		},
	}
}
