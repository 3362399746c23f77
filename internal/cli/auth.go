package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/spec-kit/society-portal/internal/api/dto"
	"github.com/spec-kit/society-portal/internal/client"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			principal, err := app.gateway.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (%s)\n", principal.Name, principal.Role)
			fmt.Printf("Home: %s\n", client.RoleHome(principal.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.gateway.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, ok := app.store.Get()
			if !ok {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("%s <%s> role=%s", principal.Name, principal.Email, principal.Role)
			if principal.FlatNumber != "" {
				fmt.Printf(" flat=%s", principal.FlatNumber)
			}
			fmt.Println()
			return nil
		},
	}
}

func newSignupCmd(app *App) *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = "admin"
			principal, err := app.gateway.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s, signed in as %s\n", principal.Email, principal.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Contact, "contact", "", "contact number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open PATH",
		Short: "Check where a navigation would land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := app.store.Get()
			decision := client.Navigate(principal, args[0])
			switch {
			case decision.NotFound:
				fmt.Printf("%s: not found\n", args[0])
			case decision.Redirect != "":
				fmt.Printf("%s -> redirect to %s\n", args[0], decision.Redirect)
			default:
				fmt.Printf("%s: allowed\n", args[0])
			}
			return nil
		},
	}
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
