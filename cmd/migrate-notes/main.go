package main

import (
	"context"
	"flag"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/rdiaz1685-afk/diariopreescolar-sub000/internal/models"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/config"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/database"
	"github.com/rdiaz1685-afk/diariopreescolar-sub000/pkg/logger"
)

// Older clients packed behavior and recess observations into general_notes
// as "Behavior: X. Recess: Y. <rest>". This one-shot job moves those parts
// into the typed behavior and recess_notes columns and strips the prefix.

var (
	behaviorPattern = regexp.MustCompile(`(?i)^\s*Behavior:\s*([^.]+)\.\s*`)
	recessPattern   = regexp.MustCompile(`(?i)^\s*Recess:\s*([^.]+)\.\s*`)
)

type legacyRow struct {
	ID           string  `db:"id"`
	Behavior     *string `db:"behavior"`
	RecessNotes  string  `db:"recess_notes"`
	GeneralNotes string  `db:"general_notes"`
}

type parsedNotes struct {
	behavior  string
	recess    string
	remainder string
}

func parseLegacyNotes(notes string) (parsedNotes, bool) {
	var parsed parsedNotes
	rest := notes
	matched := false

	if m := behaviorPattern.FindStringSubmatch(rest); m != nil {
		value := strings.ToLower(strings.TrimSpace(m[1]))
		if models.Behavior(value).Valid() {
			parsed.behavior = value
			rest = rest[len(m[0]):]
			matched = true
		}
	}
	if m := recessPattern.FindStringSubmatch(rest); m != nil {
		parsed.recess = strings.TrimSpace(m[1])
		rest = rest[len(m[0]):]
		matched = true
	}
	parsed.remainder = strings.TrimSpace(rest)
	return parsed, matched
}

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	batchSize := flag.Int("batch-size", 500, "rows per batch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	migrated, skipped, err := run(ctx, db, logr, *dryRun, *batchSize)
	if err != nil {
		logr.Sugar().Fatalw("migration failed", "error", err)
	}
	logr.Sugar().Infow("migration finished", "migrated", migrated, "skipped", skipped, "dry_run", *dryRun)
}

func run(ctx context.Context, db *sqlx.DB, logr *zap.Logger, dryRun bool, batchSize int) (int, int, error) {
	const selectQuery = `SELECT id, behavior, recess_notes, general_notes
        FROM daily_reports
        WHERE general_notes ~* '^\s*(Behavior|Recess):' AND id::text > $2
        ORDER BY id::text
        LIMIT $1`
	const updateQuery = `UPDATE daily_reports
        SET behavior = COALESCE($2, behavior),
            recess_notes = CASE WHEN $3 <> '' THEN $3 ELSE recess_notes END,
            general_notes = $4,
            updated_at = $5
        WHERE id = $1`

	migrated, skipped := 0, 0
	lastID := ""
	for {
		var rows []legacyRow
		if err := db.SelectContext(ctx, &rows, selectQuery, batchSize, lastID); err != nil {
			return migrated, skipped, err
		}
		if len(rows) == 0 {
			return migrated, skipped, nil
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return migrated, skipped, err
		}
		for _, row := range rows {
			parsed, ok := parseLegacyNotes(row.GeneralNotes)
			if !ok {
				skipped++
				continue
			}

			var behavior *string
			if parsed.behavior != "" && row.Behavior == nil {
				behavior = &parsed.behavior
			}
			if dryRun {
				logr.Sugar().Infow("would migrate row",
					"id", row.ID, "behavior", parsed.behavior, "recess", parsed.recess)
				migrated++
				continue
			}
			if _, err := tx.ExecContext(ctx, updateQuery, row.ID, behavior, parsed.recess, parsed.remainder, time.Now().UTC()); err != nil {
				tx.Rollback() //nolint:errcheck
				return migrated, skipped, err
			}
			migrated++
		}
		if err := tx.Commit(); err != nil {
			return migrated, skipped, err
		}
		lastID = rows[len(rows)-1].ID
	}
}
