package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/marcus/notecard/internal/export"
	"github.com/marcus/notecard/internal/notes"
	"github.com/marcus/notecard/internal/query"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		search  string
		tag     string
		sortKey string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in board order",
		Long: `List prints the notes the board would show for the given search text,
tag filter and sort key. Sort keys: modified, created, pinned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			list := nb.ListView(listParams(search, tag, sortKey))
			if asJSON {
				return export.Write(c.out, list, export.FormatJSON)
			}
			return writeTable(c, list)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text to match in title, content or tags")
	cmd.Flags().StringVar(&tag, "tag", "", "only notes carrying this exact tag")
	cmd.Flags().StringVar(&sortKey, "sort", string(query.SortModified), "sort key: modified, created or pinned")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func listParams(search, tag, sortKey string) query.Params {
	if tag == "" {
		tag = query.AllTags
	}
	return query.Params{Search: search, Tag: tag, Sort: query.ParseSortKey(sortKey)}
}

func writeTable(c *cli, list []notes.Note) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(c.out, "No notes.")
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tMODIFIED")
	for _, n := range list {
		title := n.Title
		if n.Pinned {
			title = "★ " + title
		}
		tags := "-"
		if len(n.Tags) > 0 {
			tags = "#" + strings.Join(n.Tags, " #")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", n.ID, title, tags, n.Modified.Format(c.cfg.UI.DateFormat))
	}
	return tw.Flush()
}
