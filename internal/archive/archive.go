// Package archive packages freshly translated files into incremental
// update_N.zip bundles so each run's delta can be shipped on its own.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"umatl/internal/logging"
	"umatl/internal/services"
)

// Archiver writes one zip per run into the archive directory, numbering the
// bundles update_1.zip, update_2.zip and so on without reusing a number.
type Archiver struct {
	translatedRoot string
	archiveDir     string
	logger         *slog.Logger
}

// New constructs an archiver rooted at the translated tree.
func New(translatedRoot, archiveDir string, logger *slog.Logger) *Archiver {
	return &Archiver{
		translatedRoot: translatedRoot,
		archiveDir:     archiveDir,
		logger:         logging.NewComponentLogger(logger, "archive"),
	}
}

// Create bundles the given files into the next free update_N.zip. Entry names
// are the files' slash-separated paths relative to the translated root. With
// no paths it is a no-op and returns an empty name.
func (a *Archiver) Create(paths []string) (string, error) {
	if len(paths) == 0 {
		a.logger.Info("nothing to archive")
		return "", nil
	}

	if err := os.MkdirAll(a.archiveDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrIO, "archive", "create", a.archiveDir, err)
	}
	target, err := a.nextArchivePath()
	if err != nil {
		return "", err
	}

	if err := a.writeZip(target, paths); err != nil {
		os.Remove(target)
		return "", err
	}

	a.logger.Info("archive written",
		logging.String("path", target),
		logging.Int("entries", len(paths)))
	return target, nil
}

// nextArchivePath finds the smallest unused update number. Gaps left by
// deleted bundles are filled before the sequence extends.
func (a *Archiver) nextArchivePath() (string, error) {
	for n := 1; ; n++ {
		candidate := filepath.Join(a.archiveDir, fmt.Sprintf("update_%d.zip", n))
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", services.Wrap(services.ErrIO, "archive", "scan", candidate, err)
		}
	}
}

func (a *Archiver) writeZip(target string, paths []string) error {
	out, err := os.Create(target)
	if err != nil {
		return services.Wrap(services.ErrIO, "archive", "create", target, err)
	}
	writer := zip.NewWriter(out)

	for _, path := range paths {
		if err := a.addEntry(writer, path); err != nil {
			writer.Close()
			out.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		out.Close()
		return services.Wrap(services.ErrIO, "archive", "finalize", target, err)
	}
	if err := out.Close(); err != nil {
		return services.Wrap(services.ErrIO, "archive", "finalize", target, err)
	}
	return nil
}

func (a *Archiver) addEntry(writer *zip.Writer, path string) error {
	rel, err := filepath.Rel(a.translatedRoot, path)
	if err != nil {
		return services.Wrap(services.ErrIO, "archive", "relativize", path, err)
	}
	entry, err := writer.Create(filepath.ToSlash(rel))
	if err != nil {
		return services.Wrap(services.ErrIO, "archive", "add", path, err)
	}
	source, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "archive", "read", path, err)
	}
	defer source.Close()
	if _, err := io.Copy(entry, source); err != nil {
		return services.Wrap(services.ErrIO, "archive", "copy", path, err)
	}
	return nil
}
