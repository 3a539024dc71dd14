package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write comments on articles",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <post-slug>",
	Short: "List the comments on an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		comments, err := c.Comments.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(comments) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}
		for _, comment := range comments {
			fmt.Printf("[%d] %s (%s)\n    %s\n",
				comment.ID, comment.Author.Username,
				comment.CreatedAt.Format("Jan 2, 2006 15:04"), comment.Content)
		}
		return nil
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <post-slug> <content>",
	Short: "Comment on an article",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		comment, err := c.Comments.Create(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Comment %d added.\n", comment.ID)
		return nil
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <post-slug> <comment-id>",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid comment id %q", args[1])
		}
		if err := c.Comments.Delete(cmd.Context(), args[0], id); err != nil {
			return err
		}
		fmt.Println("Comment deleted.")
		return nil
	},
}

func init() {
	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}
