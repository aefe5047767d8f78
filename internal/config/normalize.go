package config

import "strings"

// normalize expands and absolutizes every path field so downstream components
// never see "~" or relative paths that depend on the working directory of the
// moment.
func (c *Config) normalize() error {
	paths := []*string{
		&c.Paths.RawDir,
		&c.Paths.TranslatedDir,
		&c.Paths.ArchiveDir,
		&c.Paths.LogDir,
		&c.Paths.GlossaryPath,
		&c.Chara.SourcePath,
		&c.Chara.OutputPath,
		&c.Chara.ReferencePath,
		&c.MDB.Path,
		&c.MDB.DumpDir,
	}
	for _, field := range paths {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Backend.URL = strings.TrimSpace(c.Backend.URL)
	c.Backend.Model = strings.TrimSpace(c.Backend.Model)
	c.Extractor.Binary = strings.TrimSpace(c.Extractor.Binary)
	c.Logging.Format = strings.TrimSpace(c.Logging.Format)
	c.Logging.Level = strings.TrimSpace(c.Logging.Level)
	return nil
}
