package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/config"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/storage"
	"github.com/ja-he/rowedit/internal/storage/providers"
)

const defaultSheet = "Sheet1"

// baseDir returns the configuration directory, ROWEDIT_HOME if set.
func baseDir() string {
	home := os.Getenv("ROWEDIT_HOME")
	if home == "" {
		return os.Getenv("HOME") + "/.config/rowedit"
	}
	return strings.TrimRight(home, "/")
}

// loadConfig reads config.yaml from the configuration directory over the
// defaults for the given theme. A missing file means defaults.
func loadConfig(theme config.ColorschemeType) (config.Config, error) {
	path := filepath.Join(baseDir(), "config.yaml")
	yamlData, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("can't read config file, using defaults")
		yamlData = make([]byte, 0)
	}
	cfg, err := config.ParseConfigAugmentDefaults(theme, yamlData)
	if err != nil {
		return config.Config{}, fmt.Errorf("can't parse config data (%w)", err)
	}
	return cfg, nil
}

func themeFromFlag(theme string) config.ColorschemeType {
	switch theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}

// openSource returns the provider rows are loaded from, chosen by the data
// file's extension.
func openSource(cfg config.Config, dataPath string, fields model.Fields) (storage.Store, error) {
	if strings.EqualFold(filepath.Ext(dataPath), ".xlsx") {
		sheet := cfg.Persistence.Sheet
		if sheet == "" {
			sheet = defaultSheet
		}
		return providers.NewWorkbook(providers.WorkbookConfig{FilePath: dataPath, SheetName: sheet}, fields)
	}
	return providers.NewFile(dataPath, fields)
}

// openPersistence returns the configured persistence, or nil if rows are not
// persisted. A dry run records saves in memory only.
func openPersistence(p config.Persistence, dataPath string, fields model.Fields, dryRun bool) (storage.Persistence, error) {
	if dryRun {
		log.Info().Msg("dry run, saves are kept in memory")
		return providers.NewMemory(fields), nil
	}

	path := p.Path
	if path == "" {
		path = dataPath
	}
	timeout, err := p.SaveTimeout()
	if err != nil {
		return nil, err
	}

	switch p.Backend {
	case config.BackendNone, "":
		return nil, nil
	case config.BackendFile:
		return providers.NewFile(path, fields)
	case config.BackendWorkbook:
		sheet := p.Sheet
		if sheet == "" {
			sheet = defaultSheet
		}
		return providers.NewWorkbook(providers.WorkbookConfig{FilePath: path, SheetName: sheet}, fields)
	case config.BackendHTTP:
		return providers.NewHTTP(providers.HTTPConfig{URL: p.URL, MaxRetries: p.Retries, Timeout: timeout}, fields)
	default:
		return nil, fmt.Errorf("unknown persistence backend '%s'", p.Backend)
	}
}
