// cmd/note.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/observability"
	"github.com/xkilldash9x/rednote-cli/internal/rednote"
)

func newNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note [url or share text]",
		Short: "Extract one note with its images and video",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}
			logger := observability.GetLogger().Named("cli")
			input := strings.Join(args, " ")

			env := newEnvelope(schemas.OpNote, rednote.ExtractRedBookURL(input))
			err = withScraper(cmd.Context(), cfg, logger, func(s scraper) error {
				detail, err := s.GetNoteContent(cmd.Context(), input)
				if err != nil {
					return err
				}
				env.Detail = detail
				return nil
			})
			if err != nil {
				return fmt.Errorf("note extraction failed: %w", err)
			}
			return writeReport(cfg, env, logger)
		},
	}
}

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments [url or share text]",
		Short: "Extract the comments currently rendered under a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}
			logger := observability.GetLogger().Named("cli")
			input := strings.Join(args, " ")

			env := newEnvelope(schemas.OpComments, rednote.ExtractRedBookURL(input))
			err = withScraper(cmd.Context(), cfg, logger, func(s scraper) error {
				comments, err := s.GetNoteComments(cmd.Context(), input)
				if err != nil {
					return err
				}
				env.Comments = comments
				return nil
			})
			if err != nil {
				return fmt.Errorf("comment extraction failed: %w", err)
			}
			return writeReport(cfg, env, logger)
		},
	}
}

func newExtractURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract-url [share text]",
		Short: "Print the note link contained in app share text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), rednote.ExtractRedBookURL(strings.Join(args, " ")))
			return err
		},
	}
}
