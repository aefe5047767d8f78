// Package mdb dumps translation-relevant tables out of the game's master
// database into the JSON layouts the translators consume.
package mdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"umatl/internal/fileutil"
	"umatl/internal/logging"
	"umatl/internal/services"
)

// Dumper reads a master database read-only and writes JSON snapshots.
type Dumper struct {
	path   string
	logger *slog.Logger
}

// NewDumper constructs a dumper for the database at path.
func NewDumper(path string, logger *slog.Logger) *Dumper {
	return &Dumper{
		path:   path,
		logger: logging.NewComponentLogger(logger, "mdb"),
	}
}

func (d *Dumper) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+d.path+"?mode=ro")
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "mdb", "open", d.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, services.Wrap(services.ErrIO, "mdb", "open", d.path, err)
	}
	return db, nil
}

func tableExists(ctx context.Context, db *sql.DB, name string) error {
	var found string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&found)
	if err == sql.ErrNoRows {
		return services.Wrap(services.ErrMalformedInput, "mdb", "inspect", "missing table "+name, nil)
	}
	if err != nil {
		return services.Wrap(services.ErrIO, "mdb", "inspect", name, err)
	}
	return nil
}

// DumpTextData writes one JSON file per text_data category under dumpDir,
// named text_data_<category>.json, each mapping row index to text.
func (d *Dumper) DumpTextData(ctx context.Context, dumpDir string) ([]string, error) {
	db, err := d.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := tableExists(ctx, db, "text_data"); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT category, "index", text FROM text_data ORDER BY category, "index"`)
	if err != nil {
		return nil, services.Wrap(services.ErrMalformedInput, "mdb", "dump text_data", d.path, err)
	}
	defer rows.Close()

	byCategory := map[int64]map[string]string{}
	for rows.Next() {
		var (
			category int64
			index    int64
			text     sql.NullString
		)
		if err := rows.Scan(&category, &index, &text); err != nil {
			return nil, services.Wrap(services.ErrMalformedInput, "mdb", "dump text_data", d.path, err)
		}
		if !text.Valid || strings.TrimSpace(text.String) == "" {
			continue
		}
		entries := byCategory[category]
		if entries == nil {
			entries = map[string]string{}
			byCategory[category] = entries
		}
		entries[strconv.FormatInt(index, 10)] = text.String
	}
	if err := rows.Err(); err != nil {
		return nil, services.Wrap(services.ErrIO, "mdb", "dump text_data", d.path, err)
	}

	categories := make([]int64, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	written := make([]string, 0, len(categories))
	for _, category := range categories {
		target := filepath.Join(dumpDir, fmt.Sprintf("text_data_%d.json", category))
		if err := fileutil.WriteJSONAtomic(target, byCategory[category]); err != nil {
			return written, services.Wrap(services.ErrIO, "mdb", "write", target, err)
		}
		written = append(written, target)
	}

	d.logger.Info("text_data dumped",
		logging.Int("categories", len(written)),
		logging.String("dir", dumpDir))
	return written, nil
}

// DumpCharacterSystemText writes the character table source JSON mapping
// character id to voice id to text.
func (d *Dumper) DumpCharacterSystemText(ctx context.Context, outputPath string) error {
	db, err := d.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := tableExists(ctx, db, "character_system_text"); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT character_id, voice_id, text FROM character_system_text ORDER BY character_id, voice_id`)
	if err != nil {
		return services.Wrap(services.ErrMalformedInput, "mdb", "dump character_system_text", d.path, err)
	}
	defer rows.Close()

	table := map[string]map[string]string{}
	for rows.Next() {
		var (
			characterID int64
			voiceID     int64
			text        sql.NullString
		)
		if err := rows.Scan(&characterID, &voiceID, &text); err != nil {
			return services.Wrap(services.ErrMalformedInput, "mdb", "dump character_system_text", d.path, err)
		}
		if !text.Valid || strings.TrimSpace(text.String) == "" {
			continue
		}
		key := strconv.FormatInt(characterID, 10)
		entries := table[key]
		if entries == nil {
			entries = map[string]string{}
			table[key] = entries
		}
		entries[strconv.FormatInt(voiceID, 10)] = text.String
	}
	if err := rows.Err(); err != nil {
		return services.Wrap(services.ErrIO, "mdb", "dump character_system_text", d.path, err)
	}

	if err := fileutil.WriteJSONAtomic(outputPath, table); err != nil {
		return services.Wrap(services.ErrIO, "mdb", "write", outputPath, err)
	}
	d.logger.Info("character_system_text dumped",
		logging.Int("characters", len(table)),
		logging.String("output", outputPath))
	return nil
}
