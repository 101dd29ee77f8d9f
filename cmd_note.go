package main

import (
	"fmt"
	"io"

	"menunote/internal/notes"

	"github.com/spf13/cobra"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Read or replace the note from the terminal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the note to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}
			content, err := store.Load()
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), content)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [TEXT|-]",
		Short: "Replace the note with TEXT, or with stdin when TEXT is - or omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var content string
			if len(args) == 1 && args[0] != "-" {
				content = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(data)
			}

			store, err := noteStore()
			if err != nil {
				return err
			}
			return store.Save(content)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the note file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := noteStore()
			if err != nil {
				return err
			}
			path, err := store.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

func noteStore() (*notes.Store, error) {
	dir, err := cfg.NoteDir()
	if err != nil {
		return nil, err
	}
	return notes.NewStore(dir, cfg.Storage.File, logger), nil
}
