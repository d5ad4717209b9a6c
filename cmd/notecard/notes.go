package main

import (
	"errors"
	"fmt"

	"github.com/marcus/notecard/internal/notebook"
	"github.com/marcus/notecard/internal/notes"
	"github.com/spf13/cobra"
)

func (c *cli) addCmd() *cobra.Command {
	var title, content, tags string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			res := nb.Dispatch(notebook.Create{Title: title, Content: content, Tags: tags})
			if err := resultError(res); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s: %d\n", res.Message, res.Note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().StringVarP(&content, "content", "c", "", "note content")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	return cmd
}

func (c *cli) pinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			res := nb.Dispatch(notebook.TogglePin{ID: id})
			if err := resultError(res); err != nil {
				return err
			}
			fmt.Fprintln(c.out, res.Message)
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			res := nb.Dispatch(notebook.Delete{ID: id})
			if !res.Changed {
				return &notes.NotFoundError{ID: id}
			}
			fmt.Fprintln(c.out, res.Message)
			return nil
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nb, done, err := c.openNotebook(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if n := nb.Len(); n > 0 && !yes {
				return fmt.Errorf("refusing to delete %d notes without --yes", n)
			}
			fmt.Fprintln(c.out, nb.Dispatch(notebook.ClearAll{}).Message)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting all notes")
	return cmd
}

// resultError turns a rejected intent into the error the command returns.
func resultError(res notebook.Result) error {
	if res.OK() {
		return nil
	}
	var verr *notes.ValidationError
	if errors.As(res.Err, &verr) {
		return errors.New(verr.UserMessage())
	}
	return res.Err
}
