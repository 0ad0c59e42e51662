// Package cardsync imports the Scryfall oracle-card bulk dataset into the
// local corpus and tags every imported card.
package cardsync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/cards/scryfall"
	"github.com/mtgtools/commanderforge/internal/storage"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

const defaultBatchSize = 500

// Syncer downloads bulk card data and writes it to storage in batches.
type Syncer struct {
	client    *scryfall.Client
	db        *storage.DB
	tagger    *tagger.Tagger
	logger    *slog.Logger
	batchSize int
}

// New creates a syncer over the given Scryfall client and database.
func New(client *scryfall.Client, db *storage.DB, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		client:    client,
		db:        db,
		tagger:    tagger.New(),
		logger:    logger,
		batchSize: defaultBatchSize,
	}
}

// Result summarizes one sync run.
type Result struct {
	Downloaded int
	Imported   int
	Skipped    int
	Elapsed    time.Duration
}

// Run downloads the oracle-cards bulk file, filters it to Commander-legal
// cards, and upserts each with its mechanics tags. Cancellation is honored
// between batches.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	bulk, err := s.client.GetBulkData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bulk data listing: %w", err)
	}
	oracle := bulk.OracleCards()
	if oracle == nil {
		return nil, fmt.Errorf("bulk data listing has no oracle_cards entry")
	}

	s.logger.Info("downloading bulk card data",
		"type", oracle.Type,
		"size_bytes", oracle.Size,
		"updated_at", oracle.UpdatedAt)

	raw, err := s.client.DownloadBulkData(ctx, oracle.DownloadURI)
	if err != nil {
		return nil, fmt.Errorf("failed to download bulk data: %w", err)
	}

	result := &Result{Downloaded: len(raw)}

	batch := make([]*cards.Card, 0, s.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.importBatch(ctx, batch); err != nil {
			return err
		}
		result.Imported += len(batch)
		batch = batch[:0]
		s.logger.Info("sync progress",
			"imported", result.Imported,
			"skipped", result.Skipped,
			"total", result.Downloaded)
		return nil
	}

	for _, sc := range raw {
		card := sc.ToCard()
		if !card.IsLegalIn("commander") {
			result.Skipped++
			continue
		}
		batch = append(batch, card)
		if len(batch) >= s.batchSize {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("sync canceled: %w", err)
			}
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	s.logger.Info("card sync complete",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"elapsed", result.Elapsed)
	return result, nil
}

func (s *Syncer) importBatch(ctx context.Context, batch []*cards.Card) error {
	for _, card := range batch {
		if err := s.db.SaveCard(ctx, card); err != nil {
			return fmt.Errorf("failed to import card %q: %w", card.Name, err)
		}
		mech := s.tagger.Analyze(card)
		if err := s.db.SaveCardTags(ctx, card.ScryfallID, mech.Tags); err != nil {
			return fmt.Errorf("failed to store tags for %q: %w", card.Name, err)
		}
	}
	return nil
}
