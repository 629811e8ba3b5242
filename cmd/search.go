// cmd/search.go
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/rednote-cli/api/schemas"
	"github.com/xkilldash9x/rednote-cli/internal/observability"
)

func newSearchCmd() *cobra.Command {
	var limit int

	searchCmd := &cobra.Command{
		Use:   "search [keywords...]",
		Short: "Search notes by keyword and extract each result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig(cmd)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			logger := observability.GetLogger().Named("cli")
			keywords := strings.Join(args, " ")

			env := newEnvelope(schemas.OpSearch, keywords)
			err = withScraper(cmd.Context(), cfg, logger, func(s scraper) error {
				notes, err := s.SearchNotes(cmd.Context(), keywords, limit)
				if err != nil {
					return err
				}
				env.Notes = notes
				return nil
			})
			if err != nil {
				return fmt.Errorf("search %q failed: %w", keywords, err)
			}

			logger.Info("Search finished.", zap.String("run_id", env.RunID), zap.Int("notes", len(env.Notes)))
			return writeReport(cfg, env, logger)
		},
	}
	searchCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum notes to extract (0 uses search.default_limit)")
	return searchCmd
}
