package config

// Default returns the built-in configuration used before any file is applied.
func Default() Config {
	return Config{
		Paths: Paths{
			RawDir:        "raw",
			TranslatedDir: "translated",
			ArchiveDir:    "updates",
			LogDir:        "~/.local/share/umatl/logs",
			GlossaryPath:  "glossary.json",
		},
		Backend: Backend{
			URL:               "http://127.0.0.1:5001/v1/chat/completions",
			Model:             "",
			Temperature:       0.7,
			TopP:              0.9,
			TopK:              40,
			RepetitionPenalty: 1.1,
			RetryAttempts:     3,
			TimeoutSeconds:    120,
		},
		Chara: Chara{
			SourcePath:    "raw/chara/character_system_text.json",
			OutputPath:    "translated/chara/character_system_text.json",
			ReferencePath: "",
		},
		MDB: MDB{
			Path:    "",
			DumpDir: "raw/mdb",
		},
		Extractor: Extractor{
			Binary:         "",
			TimeoutSeconds: 1800,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
