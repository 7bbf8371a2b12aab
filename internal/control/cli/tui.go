package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/control/validate"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/potatolog"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/tui"
)

type TUICommand struct {
	Data          string `short:"d" long:"data" required:"true" description:"Specify the file rows are loaded from (.yaml, .json or .xlsx)" value-name:"<file>"`
	Theme         string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in config.yaml"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs dropped)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
	DryRun        bool   `short:"n" long:"dry-run" description:"do not persist saves, only log them"`
}

func (command *TUICommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, &potatolog.GlobalMemoryLogReaderWriter)
	} else {
		logWriter = &potatolog.GlobalMemoryLogReaderWriter
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Caller().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	cfg, err := loadConfig(themeFromFlag(command.Theme))
	if err != nil {
		return err
	}
	columns, err := cfg.ModelColumns()
	if err != nil {
		return fmt.Errorf("invalid column configuration (%w)", err)
	}
	fields := cfg.Fields.ToModel()

	source, err := openSource(cfg, command.Data, fields)
	if err != nil {
		return fmt.Errorf("could not open '%s' (%w)", command.Data, err)
	}
	records, err := source.Load(context.Background())
	if err != nil {
		return fmt.Errorf("could not load rows from '%s' (%w)", command.Data, err)
	}
	log.Info().Int("rows", len(records)).Str("file", command.Data).Msg("loaded rows")

	persistence, err := openPersistence(cfg.Persistence, command.Data, fields, command.DryRun)
	if err != nil {
		return fmt.Errorf("could not set up persistence (%w)", err)
	}
	saveTimeout, err := cfg.Persistence.SaveTimeout()
	if err != nil {
		return err
	}

	stylesheet, err := styling.NewStylesheetFromConfig(cfg.Stylesheet)
	if err != nil {
		return fmt.Errorf("invalid stylesheet (%w)", err)
	}

	screenHandler, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}

	controller, err := NewController(
		screenHandler,
		grid.NewTable(columns, records),
		tableedit.Options{
			Fields:         fields,
			Validator:      validate.Required{Columns: columns},
			Persistence:    persistence,
			SaveTimeout:    saveTimeout,
			NewRowPosition: tableedit.Position(cfg.NewRowPosition),
		},
		stylesheet,
		cfg.Keymaps,
	)
	if err != nil {
		screenHandler.Fini()
		return err
	}

	// now that the screen is initialized, we'll always want the TUI logger, so
	// we're making it the global logger
	log.Logger = tuiLogger

	controller.Run()
	return nil
}
