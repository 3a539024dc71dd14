package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwellmag/inkwell/client"
)

var (
	loginPassword    string
	registerEmail    string
	registerPassword string
	registerConfirm  string
	registerFirst    string
	registerLast     string
	registerAuthor   bool
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		password := loginPassword
		if password == "" {
			password, err = promptLine("Password: ")
			if err != nil {
				return err
			}
		}

		profile, err := c.Auth.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s", profile.Username)
		if profile.IsAuthor {
			fmt.Print(" (author)")
		}
		fmt.Println()
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		c.Auth.Logout(cmd.Context())
		fmt.Println("Signed out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		password := registerPassword
		if password == "" {
			if password, err = promptLine("Password: "); err != nil {
				return err
			}
		}
		confirm := registerConfirm
		if confirm == "" && registerPassword == "" {
			if confirm, err = promptLine("Confirm password: "); err != nil {
				return err
			}
		}
		if confirm == "" {
			confirm = password
		}

		profile, err := c.Auth.Register(cmd.Context(), client.RegisterParams{
			Username:        args[0],
			Email:           registerEmail,
			Password:        password,
			ConfirmPassword: confirm,
			FirstName:       registerFirst,
			LastName:        registerLast,
			IsAuthor:        registerAuthor,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s. You are signed in.\n", profile.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the locally cached signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		user := c.Auth.CurrentUser()
		if user == nil {
			fmt.Println("Not signed in.")
			return nil
		}
		role := "reader"
		if user.IsAuthor {
			role = "author"
		}
		fmt.Printf("%s <%s> (%s)\n", user.Username, user.Email, role)
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Obtain a fresh access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		if err := c.Auth.Refresh(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Access token refreshed.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted if omitted)")

	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Password (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm-password", "", "Password confirmation (defaults to --password)")
	registerCmd.Flags().StringVar(&registerFirst, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerLast, "last-name", "", "Last name")
	registerCmd.Flags().BoolVar(&registerAuthor, "author", false, "Request an author account")
	registerCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd, refreshCmd)
}

func promptLine(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
