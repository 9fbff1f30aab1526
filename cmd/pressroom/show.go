package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/eringen/pressroom"
	"github.com/eringen/pressroom/content"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bd93f9"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8be9fd")).Width(14)
)

func newShowCmd(c *cli) *cobra.Command {
	var bodyOnly bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the resolved header and rendered HTML of one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, ok := c.library().Resolve(args[0])
			if !ok {
				return fmt.Errorf("no item %q", args[0])
			}
			w := cmd.OutOrStdout()
			if !bodyOnly {
				writeHeader(w, it)
				fmt.Fprintln(w)
			}
			if err := pressroom.RenderBody(it.Body).Render(cmd.Context(), w); err != nil {
				return fmt.Errorf("render %s: %w", it.ID, err)
			}
			fmt.Fprintln(w)
			return nil
		},
	}
	cmd.Flags().BoolVar(&bodyOnly, "html", false, "print only the rendered body")
	return cmd
}

func writeHeader(w io.Writer, it content.Item) {
	fmt.Fprintln(w, titleStyle.Render(it.Title))
	field := func(k, v string) {
		if v != "" {
			fmt.Fprintln(w, keyStyle.Render(k)+v)
		}
	}
	field("id", it.ID)
	field("category", string(it.Category))
	field("date", it.Date)
	field("excerpt", it.Excerpt)
	field("author", it.Author.Name)
	if it.Interviewee != nil {
		field("interviewee", it.Interviewee.Name)
	}
	field("cover", it.CoverImage)
	field("og image", it.SocialImage)
	field("topics", strings.Join(it.Tags, ", "))
	field("source", it.Root+"/"+it.SourceLocation)
	if it.Degraded {
		fmt.Fprintln(w, degradedStyle.Render("could not be loaded"))
	}
}
