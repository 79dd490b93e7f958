package cmd

import (
	"fmt"
	"strings"

	"hackernews-report/internal/search"
	"hackernews-report/internal/tags"

	"github.com/spf13/cobra"
)

var tagsSuggest string

// tagsCmd lists the tag taxonomy or suggests tags close to a given name.
var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List available tags or suggest close matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		taxonomy := tags.Default()
		if tagsSuggest != "" {
			matches := search.SuggestSimilar(tagsSuggest, taxonomy.AllTags())
			if len(matches) == 0 {
				fmt.Printf("no tags similar to %q\n", tagsSuggest)
				return nil
			}
			fmt.Printf("tags similar to %q: %s\n", tagsSuggest, strings.Join(matches, ", "))
			return nil
		}
		for _, name := range taxonomy.AllTags() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	tagsCmd.Flags().StringVar(&tagsSuggest, "suggest", "", "suggest tags similar to this name")
	rootCmd.AddCommand(tagsCmd)
}
