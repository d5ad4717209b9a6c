package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marcus/notecard/internal/export"
	"github.com/marcus/notecard/internal/query"
	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		format  string
		output  string
		dir     string
		search  string
		tag     string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export notes as JSON, YAML, Markdown or HTML",
		Long: `Export writes the notes in board order to stdout or a file.

With --dir every note is written to its own Markdown file with YAML
frontmatter instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			list := nb.ListView(listParams(search, tag, sortKey))

			if dir != "" {
				paths, err := export.WriteDir(dir, list)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "Exported %d notes to %s\n", len(paths), dir)
				return nil
			}

			var w io.Writer = c.out
			if output != "" && output != "-" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}
			if err := export.Write(w, list, f); err != nil {
				return err
			}
			c.logger.Debug("exported notes", "count", len(list), "format", f, "output", output)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", string(export.FormatMarkdown), "one of: "+formatNames())
	fl.StringVarP(&output, "output", "o", "", "output file (default stdout)")
	fl.StringVar(&dir, "dir", "", "write one Markdown file per note into this directory")
	fl.StringVar(&search, "search", "", "only notes matching this text")
	fl.StringVar(&tag, "tag", "", "only notes carrying this tag")
	fl.StringVar(&sortKey, "sort", string(query.SortModified), "sort key: modified, created or pinned")
	return cmd
}

func formatNames() string {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
