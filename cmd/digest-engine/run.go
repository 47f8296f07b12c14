// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pdiddy/digest-engine/internal/extract"
	"github.com/pdiddy/digest-engine/internal/fetch"
	"github.com/pdiddy/digest-engine/internal/mail"
	"github.com/pdiddy/digest-engine/internal/pipeline"
	"github.com/pdiddy/digest-engine/internal/store"
	"github.com/pdiddy/digest-engine/internal/summarize"
	"github.com/pdiddy/digest-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the digest pipeline once and exit",
	Long: `Run executes the full digest pipeline a single time: fetch from every
enabled source, extract full text, apply the blocklist, match and rank
against topics, summarize, email (when a recipient is configured), and
record the run in the digest log.`,
	RunE: runOnce,
}

func runOnce(cmd *cobra.Command, args []string) error {
	noEmail, _ := cmd.Flags().GetBool("no-email")

	cfg := loadConfig()
	logger := newLogger(cfg.LogLevel)

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	p := buildPipeline(st, cfg, logger, noEmail)
	digest, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("digest generated: %d articles from %d sources, %d entries\n",
		digest.ArticleCount, digest.SourceCount, digest.EntryCount())
	for _, section := range digest.TopicSections {
		fmt.Printf("  %s: %d articles\n", section.TopicName, len(section.Entries))
	}
	return nil
}

// buildPipeline wires the pipeline from configuration. With noEmail set,
// delivery is skipped even when a recipient is configured.
func buildPipeline(st *store.Store, cfg types.Config, logger *slog.Logger, noEmail bool) *pipeline.Pipeline {
	recipient := cfg.Email.Recipient
	if noEmail {
		recipient = ""
	}

	var mailer pipeline.Mailer
	if recipient != "" {
		mailer = mail.NewSender(cfg.Email, logger)
	}

	return pipeline.New(pipeline.Deps{
		Store:      st,
		Registry:   fetch.NewRegistry(cfg.Fetch, nil, secretDefault("reddit-user-agent", "")),
		Extractor:  extract.NewExtractor(cfg.Extract, nil),
		Summarizer: summarize.NewSummarizer(cfg.Summarizer, nil, logger),
		Mailer:     mailer,
		Recipient:  recipient,
		Logger:     logger,
	})
}

func init() {
	runCmd.Flags().Bool("no-email", false, "assemble and log the digest without sending email")

	rootCmd.AddCommand(runCmd)
}
