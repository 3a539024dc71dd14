package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse the category taxonomy",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		categories, err := c.Categories.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tNAME\tARTICLES")
		for _, cat := range categories {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", cat.ID, cat.Slug, cat.Name, cat.PostsCount)
		}
		return w.Flush()
	},
}

var categoriesShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a single category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		cat, err := c.Categories.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s) - %d published articles\n", cat.Name, cat.Slug, cat.PostsCount)
		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesListCmd, categoriesShowCmd)
	rootCmd.AddCommand(categoriesCmd)
}
