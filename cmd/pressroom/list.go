package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/eringen/pressroom/content"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff79c6")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	degradedStyle = cellStyle.Foreground(lipgloss.Color("#ff5555"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
)

type listOptions struct {
	category string
	query    string
	topics   []string
	page     int
	pageSize int
}

func newListCmd(c *cli) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List content items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := c.library().Items()
			if opts.category != "" {
				cat, ok := content.ParseCategory(opts.category)
				if !ok {
					return fmt.Errorf("unknown category %q", opts.category)
				}
				items = content.Filter(items, cat)
			}
			res := content.Search(items, content.Query{
				Text:     opts.query,
				Tags:     opts.topics,
				Page:     opts.page,
				PageSize: opts.pageSize,
			})
			writeList(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "article, ama or press-release")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "free-text search")
	cmd.Flags().StringArrayVarP(&opts.topics, "topic", "t", nil, "topic filter, repeatable")
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 20, "items per page")
	return cmd
}

// writeList renders one page of results as a table followed by a summary
// line.
func writeList(w io.Writer, res content.Result) {
	if res.Total == 0 {
		fmt.Fprintln(w, dimStyle.Render("no items"))
		return
	}

	rows := make([][]string, 0, len(res.Items))
	degraded := make(map[int]bool)
	for i, it := range res.Items {
		rows = append(rows, []string{
			it.ID,
			string(content.Classify(it)),
			it.Date,
			it.Title,
			strings.Join(it.Tags, ", "),
		})
		degraded[i] = it.Degraded
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "CATEGORY", "DATE", "TITLE", "TOPICS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case degraded[row]:
				return degradedStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("page %d of %d, %d items", res.Page, res.TotalPages, res.Total)))
}
