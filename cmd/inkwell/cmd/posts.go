package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inkwellmag/inkwell/client"
)

var (
	postsPage      int
	createTitle    string
	createContent  string
	createExcerpt  string
	createCategory int
	createImage    string
	createPublish  bool
	updateTitle    string
	updateContent  string
	updateExcerpt  string
	updateCategory int
	updateStatus   string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and author articles",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List published articles, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		page, err := c.Posts.List(cmd.Context(), postsPage)
		if err != nil {
			return err
		}
		printPostPage(page)
		return nil
	},
}

var postsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search articles by title, content, or excerpt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		page, err := c.Posts.Search(cmd.Context(), args[0], postsPage)
		if err != nil {
			return err
		}
		printPostPage(page)
		return nil
	},
}

var postsShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Read an article and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		post, err := c.Posts.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", post.Title)
		fmt.Printf("by %s", post.Author.Username)
		if post.Category != nil {
			fmt.Printf(" in %s", post.Category.Name)
		}
		fmt.Printf(" - %s\n\n", post.CreatedAt.Format("Jan 2, 2006"))
		fmt.Println(post.Content)

		comments, err := c.Comments.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(comments) > 0 {
			fmt.Printf("\nComments (%d):\n", len(comments))
			for _, comment := range comments {
				fmt.Printf("  [%d] %s: %s\n", comment.ID, comment.Author.Username, comment.Content)
			}
		}
		return nil
	},
}

var postsByCategoryCmd = &cobra.Command{
	Use:   "by-category <slug>",
	Short: "List published articles in a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		page, err := c.Posts.ByCategory(cmd.Context(), args[0], postsPage)
		if err != nil {
			return err
		}
		printPostPage(page)
		return nil
	},
}

var postsByAuthorCmd = &cobra.Command{
	Use:   "by-author <username>",
	Short: "List published articles by an author",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		page, err := c.Posts.ByAuthor(cmd.Context(), args[0], postsPage)
		if err != nil {
			return err
		}
		printPostPage(page)
		return nil
	},
}

var postsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your own articles, drafts included",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		page, err := c.Posts.Mine(cmd.Context(), postsPage)
		if err != nil {
			return err
		}
		printPostPage(page)
		return nil
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an article (author accounts only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		status := client.StatusDraft
		if createPublish {
			status = client.StatusPublished
		}
		post, err := c.Posts.Create(cmd.Context(), client.CreatePostParams{
			Title:      createTitle,
			Content:    createContent,
			Excerpt:    createExcerpt,
			CategoryID: createCategory,
			Image:      createImage,
			Status:     status,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created %s (%s)\n", post.Slug, post.Status)
		return nil
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <slug>",
	Short: "Update one of your articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		post, err := c.Posts.Update(cmd.Context(), args[0], client.UpdatePostParams{
			Title:      updateTitle,
			Content:    updateContent,
			Excerpt:    updateExcerpt,
			CategoryID: updateCategory,
			Status:     client.PostStatus(updateStatus),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Updated %s (%s)\n", post.Slug, post.Status)
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete one of your articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, closer, err := newClient()
		if err != nil {
			return err
		}
		defer closer()

		if err := c.Posts.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func printPostPage(page client.Page[client.Post]) {
	if page.Count == 0 {
		fmt.Println("No articles found.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tAUTHOR\tSTATUS\tDATE")
	for _, p := range page.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Slug, p.Title, p.Author.Username, p.Status, p.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
	fmt.Printf("%d total", page.Count)
	if page.HasNext() {
		fmt.Printf(", more with --page %d", postsPage+1)
	}
	fmt.Println()
}

func init() {
	for _, c := range []*cobra.Command{
		postsListCmd, postsSearchCmd, postsByCategoryCmd, postsByAuthorCmd, postsMineCmd,
	} {
		c.Flags().IntVar(&postsPage, "page", 1, "Page number")
	}

	postsCreateCmd.Flags().StringVar(&createTitle, "title", "", "Article title")
	postsCreateCmd.Flags().StringVar(&createContent, "content", "", "Article body")
	postsCreateCmd.Flags().StringVar(&createExcerpt, "excerpt", "", "Short excerpt (generated from the body if omitted)")
	postsCreateCmd.Flags().IntVar(&createCategory, "category", 0, "Category ID")
	postsCreateCmd.Flags().StringVar(&createImage, "image", "", "Cover image URL")
	postsCreateCmd.Flags().BoolVar(&createPublish, "publish", false, "Publish immediately instead of saving a draft")
	postsCreateCmd.MarkFlagRequired("title")
	postsCreateCmd.MarkFlagRequired("content")

	postsUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	postsUpdateCmd.Flags().StringVar(&updateContent, "content", "", "New body")
	postsUpdateCmd.Flags().StringVar(&updateExcerpt, "excerpt", "", "New excerpt")
	postsUpdateCmd.Flags().IntVar(&updateCategory, "category", 0, "New category ID")
	postsUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "New status (draft or published)")

	postsCmd.AddCommand(postsListCmd, postsSearchCmd, postsShowCmd, postsByCategoryCmd,
		postsByAuthorCmd, postsMineCmd, postsCreateCmd, postsUpdateCmd, postsDeleteCmd)
	rootCmd.AddCommand(postsCmd)
}
