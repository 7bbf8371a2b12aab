package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/model"
)

// Config is the configuration data as present in a config file at
// '${ROWEDIT_HOME}/config.yaml'.
type Config struct {
	Stylesheet     Stylesheet        `yaml:"stylesheet"`
	Columns        []Column          `yaml:"columns"`
	Fields         Fields            `yaml:"fields"`
	NewRowPosition string            `yaml:"new-row-position"`
	Persistence    Persistence       `yaml:"persistence"`
	Keymaps        input.InputConfig `yaml:"keymaps"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal    Styling `yaml:"normal"`
	Header    Styling `yaml:"header"`
	Cursor    Styling `yaml:"cursor"`
	Editing   Styling `yaml:"editing"`
	Widget    Styling `yaml:"widget"`
	Locked    Styling `yaml:"locked"`
	Published Styling `yaml:"published"`
	Dirty     Styling `yaml:"dirty"`
	Status    Styling `yaml:"status"`
	LogError  Styling `yaml:"log-error"`
	LogWarn   Styling `yaml:"log-warn"`
	LogInfo   Styling `yaml:"log-info"`
	Help      Styling `yaml:"help"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// A Column descriptor as defined in a config file.
type Column struct {
	Data     string        `yaml:"data"`
	Title    string        `yaml:"title,omitempty"`
	Editable bool          `yaml:"editable,omitempty"`
	Type     string        `yaml:"type,omitempty"`
	Options  ColumnOptions `yaml:"options,omitempty"`
	Default  any           `yaml:"default,omitempty"`
	Visible  *bool         `yaml:"visible,omitempty"`
	Required bool          `yaml:"required,omitempty"`
}

// ColumnOptions are the per-type options of a column.
type ColumnOptions struct {
	Choices     []Choice `yaml:"choices,omitempty"`
	Format      string   `yaml:"format,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
}

// Choice is one option of a select column.
type Choice struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// Fields names the record fields holding id, status and deleted flag.
type Fields struct {
	ID      string `yaml:"id,omitempty"`
	Status  string `yaml:"status,omitempty"`
	Deleted string `yaml:"deleted,omitempty"`
}

// Persistence selects and configures the storage backend.
type Persistence struct {
	// Backend is one of "none", "http", "workbook", "file".
	Backend string `yaml:"backend"`
	URL     string `yaml:"url,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Sheet   string `yaml:"sheet,omitempty"`
	Retries int    `yaml:"retries,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// Persistence backends.
const (
	BackendNone     = "none"
	BackendHTTP     = "http"
	BackendWorkbook = "workbook"
	BackendFile     = "file"
)

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	defaultConfig := Default(defaultTheme)

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	return result, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	if len(augment.Columns) > 0 {
		result.Columns = augment.Columns
	}

	overwriteIfDefined(&result.Fields.ID, augment.Fields.ID)
	overwriteIfDefined(&result.Fields.Status, augment.Fields.Status)
	overwriteIfDefined(&result.Fields.Deleted, augment.Fields.Deleted)
	overwriteIfDefined(&result.NewRowPosition, augment.NewRowPosition)

	if augment.Persistence.Backend != "" {
		result.Persistence = augment.Persistence
	}

	result.Keymaps.Grid = mergeKeymap(base.Keymaps.Grid, augment.Keymaps.Grid)
	result.Keymaps.Editor = mergeKeymap(base.Keymaps.Editor, augment.Keymaps.Editor)

	return result
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Header.overwriteIfDefined(augment.Header)
	result.Cursor.overwriteIfDefined(augment.Cursor)
	result.Editing.overwriteIfDefined(augment.Editing)
	result.Widget.overwriteIfDefined(augment.Widget)
	result.Locked.overwriteIfDefined(augment.Locked)
	result.Published.overwriteIfDefined(augment.Published)
	result.Dirty.overwriteIfDefined(augment.Dirty)
	result.Status.overwriteIfDefined(augment.Status)
	result.LogError.overwriteIfDefined(augment.LogError)
	result.LogWarn.overwriteIfDefined(augment.LogWarn)
	result.LogInfo.overwriteIfDefined(augment.LogInfo)
	result.Help.overwriteIfDefined(augment.Help)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		style := *augment.Style
		s.Style = &style
	}
}

func overwriteIfDefined(s *string, augment string) {
	if augment != "" {
		*s = augment
	}
}

// mergeKeymap returns base with augment's mappings added; mapping a keyspec to
// the empty action removes it.
func mergeKeymap(base, augment map[input.Keyspec]input.Actionspec) map[input.Keyspec]input.Actionspec {
	result := make(map[input.Keyspec]input.Actionspec, len(base)+len(augment))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range augment {
		if v == "" {
			delete(result, k)
			continue
		}
		result[k] = v
	}
	return result
}

// ModelColumns converts and validates the column descriptors.
func (c Config) ModelColumns() ([]model.Column, error) {
	result := make([]model.Column, len(c.Columns))
	for i, col := range c.Columns {
		result[i] = col.ToModel()
	}
	if err := model.ValidateColumns(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ToModel converts the column descriptor. Columns are visible and of type text
// unless stated otherwise.
func (c Column) ToModel() model.Column {
	typ := model.ColumnType(c.Type)
	if typ == "" {
		typ = model.ColumnText
	}
	var choices []model.Choice
	for _, ch := range c.Options.Choices {
		choices = append(choices, model.Choice{ID: ch.ID, Text: ch.Text})
	}
	return model.Column{
		Data:     c.Data,
		Title:    c.Title,
		Editable: c.Editable,
		Type:     typ,
		Options: model.ColumnOptions{
			Choices:     choices,
			Format:      c.Options.Format,
			Placeholder: c.Options.Placeholder,
		},
		Default:  c.Default,
		Hidden:   c.Visible != nil && !*c.Visible,
		Required: c.Required,
	}
}

// ToModel converts the field names, falling back to the defaults.
func (f Fields) ToModel() model.Fields {
	result := model.DefaultFields()
	overwriteIfDefined(&result.ID, f.ID)
	overwriteIfDefined(&result.Status, f.Status)
	overwriteIfDefined(&result.Deleted, f.Deleted)
	return result
}

// SaveTimeout returns the configured persistence timeout, or zero if there is
// none.
func (p Persistence) SaveTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid persistence timeout '%s' (%w)", p.Timeout, err)
	}
	return d, nil
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)
