package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwellmag/inkwell/client"
	"github.com/inkwellmag/inkwell/session"
)

var (
	profileEmail string
	profileFirst string
	profileLast  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile from the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		profile, err := c.Auth.Profile(cmd.Context())
		if err != nil {
			return err
		}
		printProfile(profile)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		profile, err := c.Auth.UpdateProfile(cmd.Context(), client.ProfileUpdate{
			Email:     profileEmail,
			FirstName: profileFirst,
			LastName:  profileLast,
		})
		if err != nil {
			return err
		}
		fmt.Println("Profile updated.")
		printProfile(profile)
		return nil
	},
}

func printProfile(p *session.UserProfile) {
	fmt.Printf("Username:  %s\n", p.Username)
	fmt.Printf("Email:     %s\n", p.Email)
	if p.FirstName != "" || p.LastName != "" {
		fmt.Printf("Name:      %s %s\n", p.FirstName, p.LastName)
	}
	role := "reader"
	if p.IsAuthor {
		role = "author"
	}
	fmt.Printf("Role:      %s\n", role)
	fmt.Printf("Member:    since %s\n", p.CreatedAt.Format("Jan 2, 2006"))
	if p.IsAuthor {
		fmt.Printf("Published: %d articles\n", p.PostsCount)
	}
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "New email address")
	profileUpdateCmd.Flags().StringVar(&profileFirst, "first-name", "", "New first name")
	profileUpdateCmd.Flags().StringVar(&profileLast, "last-name", "", "New last name")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
