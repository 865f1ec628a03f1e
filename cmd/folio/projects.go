package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/folio/portfolio"
)

func newProjectsCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the projects in the content, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadContent()
			if err != nil {
				return err
			}
			cats := portfolio.Categories(c.Projects)
			if !slices.Contains(cats, category) {
				return fmt.Errorf("unknown category %q, expected one of %s", category, strings.Join(cats, ", "))
			}
			out := cmd.OutOrStdout()
			for _, p := range portfolio.FilterProjects(c.Projects, category) {
				fmt.Fprintf(out, "%-40s %-14s %s\n", p.Title, p.Category, p.Year)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "filter", portfolio.CategoryAll, "category to list")
	return cmd
}
