package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/rowedit/internal/control/action"
	"github.com/ja-he/rowedit/internal/control/edit"
	"github.com/ja-he/rowedit/internal/control/tableedit"
	"github.com/ja-he/rowedit/internal/grid"
	"github.com/ja-he/rowedit/internal/input"
	"github.com/ja-he/rowedit/internal/input/processors"
	"github.com/ja-he/rowedit/internal/model"
	"github.com/ja-he/rowedit/internal/potatolog"
	"github.com/ja-he/rowedit/internal/storage"
	"github.com/ja-he/rowedit/internal/styling"
	"github.com/ja-he/rowedit/internal/tui"
	"github.com/ja-he/rowedit/internal/ui"
	"github.com/ja-he/rowedit/internal/ui/panes"
)

// saveResultEvent carries a persistence outcome into the event loop.
type saveResultEvent struct {
	tcell.EventTime
	result tableedit.SaveResult
}

// screen is what the controller needs of the terminal.
type screen interface {
	GetEventPollable() tui.EventPollable
	tui.InitializedScreen
	tui.ScreenSynchronizer
	ui.ConstrainedRenderer
	ui.RenderOrchestratorControl
	ui.TextCursorController
	Post(ev tcell.Event) error
}

// Controller runs the interactive grid editor: it owns the event loop, routes
// key input through the pane tree, and brings persistence results back onto
// the loop.
type Controller struct {
	grid        grid.Grid
	editor      *tableedit.Editor
	fields      model.Fields
	persistence storage.Persistence

	screen   screen
	rootPane *panes.RootPane

	gridTree        *input.Tree
	gridInput       *processors.ModalInputProcessor
	editorInput     input.SimpleInputProcessor
	editorOverlay   uint
	editorOverlayOn bool

	cursorRow, cursorCol int
	showHelp, showLog    bool
	helpContent          input.Help
	history              []action.Action

	// creating holds the keys of rows whose create is still in flight.
	creating map[string]bool

	exit bool
}

// NewController attaches an editor to the grid and builds the pane tree and
// input processors for it.
func NewController(
	s screen,
	g grid.Grid,
	opts tableedit.Options,
	stylesheet *styling.Stylesheet,
	keymaps input.InputConfig,
) (*Controller, error) {
	c := &Controller{
		grid:        g,
		fields:      opts.Fields,
		persistence: opts.Persistence,
		screen:      s,
		creating:    map[string]bool{},
	}

	opts.OnResult = c.postSaveResult
	editor, err := tableedit.New(g, opts)
	if err != nil {
		return nil, fmt.Errorf("could not attach editor (%w)", err)
	}
	c.editor = editor
	c.fields = editor.Fields()
	editor.Subscribe(c.trackCreate)

	appActions := map[input.Actionspec]func(){
		"quit":        func() { c.exit = true },
		"toggle-help": c.openHelp,
		"toggle-log":  func() { c.showLog = !c.showLog },
	}
	gridActions := map[input.Actionspec]func(){
		"cursor-down":   func() { c.moveCursor(1, 0) },
		"cursor-up":     func() { c.moveCursor(-1, 0) },
		"cursor-left":   func() { c.moveCursor(0, -1) },
		"cursor-right":  func() { c.moveCursor(0, 1) },
		"cursor-top":    func() { c.cursorRow = 0 },
		"cursor-bottom": func() { c.cursorRow = c.grid.Len() - 1 },
		"enter-row":     func() { c.editor.Session().Enter(c.cursorRow, c.cursorCol) },
		"new-row":       func() { c.editor.AddRow() },
		"delete-row":    func() { c.editor.Delete(c.cursorRow) },
		"lock-row":      func() { c.changeStatus("lock row", c.editor.LockRows) },
		"unlock-row":    func() { c.changeStatus("unlock row", c.editor.UnlockRows) },
		"publish-row":   func() { c.changeStatus("publish row", c.editor.PublishRows) },
		"unpublish-row": func() { c.changeStatus("unpublish row", c.editor.UnpublishRows) },
		"snapshot":      c.editor.Snapshot,
		"rollback":      c.editor.Rollback,
		"save-dirty":    c.saveDirty,
		"undo":          c.undo,
	}
	editorActions := map[input.Actionspec]func(){
		"commit":           c.commit,
		"abandon":          func() { c.editor.Session().Abandon() },
		"abandon-up":       func() { c.abandonAndMove(-1) },
		"abandon-down":     func() { c.abandonAndMove(1) },
		"next-field":       c.editor.Session().FocusNext,
		"prev-field":       c.editor.Session().FocusPrev,
		"backspace":        c.onFocused(edit.Widget.BackspaceRune),
		"delete":           c.onFocused(edit.Widget.DeleteRune),
		"clear":            c.onFocused(edit.Widget.Clear),
		"cursor-left":      c.onFocused(edit.Widget.MoveCursorLeft),
		"cursor-right":     c.onFocused(edit.Widget.MoveCursorRight),
		"cursor-beginning": c.onFocused(edit.Widget.MoveCursorToBeginning),
		"cursor-end":       c.onFocused(edit.Widget.MoveCursorPastEnd),
	}

	appMappings := map[input.Keyspec]action.Action{}
	gridMappings := map[input.Keyspec]action.Action{}
	for keyspec, actionspec := range keymaps.Grid {
		if f, ok := appActions[actionspec]; ok {
			appMappings[keyspec] = simpleAction(actionspec, f)
			continue
		}
		f, ok := gridActions[actionspec]
		if !ok {
			return nil, fmt.Errorf("unknown grid action '%s' for '%s'", actionspec, keyspec)
		}
		gridMappings[keyspec] = simpleAction(actionspec, f)
	}
	editorSpecs := map[input.Keyspec]action.Action{}
	for keyspec, actionspec := range keymaps.Editor {
		f, ok := editorActions[actionspec]
		if !ok {
			return nil, fmt.Errorf("unknown editor action '%s' for '%s'", actionspec, keyspec)
		}
		editorSpecs[keyspec] = simpleAction(actionspec, f)
	}

	appTree, err := input.ConstructInputTree(appMappings)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for root pane (%w)", err)
	}
	gridTree, err := input.ConstructInputTree(gridMappings)
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for grid pane (%w)", err)
	}
	editorMappings, err := input.SingleKeyMappings(editorSpecs)
	if err != nil {
		return nil, fmt.Errorf("failed to construct editor mappings (%w)", err)
	}
	closeHelp := simpleAction("close help", func() { c.showHelp = false })
	helpTree, err := input.ConstructInputTree(map[input.Keyspec]action.Action{
		"?":     closeHelp,
		"q":     closeHelp,
		"<esc>": closeHelp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct input tree for help pane (%w)", err)
	}

	c.gridTree = gridTree
	c.gridInput = processors.NewModalInputProcessor(gridTree)
	c.editorInput = processors.NewTextInputProcessor(editorMappings, func(r rune) {
		if w := c.editor.Session().Focused(); w != nil {
			w.AddRune(r)
		}
	})

	screenDimensions := s.Dimensions
	gridDimensions := func() (x, y, w, h int) {
		x, y, w, h = screenDimensions()
		return x, y, w, h - 1
	}
	statusDimensions := func() (x, y, w, h int) {
		x, y, w, h = screenDimensions()
		return x, y + h - 1, w, 1
	}
	overlayDimensions := func() (x, y, w, h int) {
		x, y, w, h = screenDimensions()
		return x + w/8, y + h/8, w - w/4, h - h/4
	}

	cursorWrangler := ui.NewCursorWrangler(s)
	renderer := func(dims func() (x, y, w, h int)) ui.ConstrainedRenderer {
		return ui.NewConstrainedRenderer(s, dims)
	}

	c.rootPane = panes.NewRootPane(
		s,
		cursorWrangler,
		screenDimensions,
		panes.NewGridPane(renderer(gridDimensions), gridDimensions, stylesheet, c.editor, c.cursor, cursorWrangler, c.gridInput),
		panes.NewStatusPane(renderer(statusDimensions), statusDimensions, stylesheet, c.statusInfo, &potatolog.GlobalMemoryLogReaderWriter),
		panes.NewLogPane(renderer(overlayDimensions), overlayDimensions, stylesheet, func() bool { return c.showLog }, &potatolog.GlobalMemoryLogReaderWriter),
		panes.NewHelpPane(renderer(overlayDimensions), overlayDimensions, stylesheet, func() bool { return c.showHelp }, func() input.Help { return c.helpContent }, helpTree),
		appTree,
	)

	return c, nil
}

func simpleAction(actionspec input.Actionspec, f func()) action.Action {
	return action.NewSimple(func() string { return string(actionspec) }, f)
}

// Run runs the event loop until the user quits.
// Every event is handled to completion and followed by a redraw.
func (c *Controller) Run() {
	log.Info().Msg("rowedit TUI started")
	defer c.screen.Fini()

	c.rootPane.Draw()
	for !c.exit {
		ev := c.screen.GetEventPollable().PollEvent()
		if ev == nil {
			return
		}
		c.handleEvent(ev)
		if c.exit {
			return
		}
		c.rootPane.Draw()
	}
}

func (c *Controller) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		key := input.KeyFromTcellEvent(e)
		if !c.rootPane.ProcessInput(key) {
			log.Debug().Str("key", key.ToDebugString()).Msg("could not apply key input")
		}
		c.afterInput()

	case *tcell.EventResize:
		c.screen.NeedsSync()

	case *saveResultEvent:
		c.handleSaveResult(e.result)
	}
}

// afterInput reconciles the input mode and the cursor with the edit session,
// which any action may have started or ended.
func (c *Controller) afterInput() {
	session := c.editor.Session()
	switch {
	case session.Active() && !c.editorOverlayOn:
		c.editorOverlay = c.gridInput.ApplyModalOverlay(c.editorInput)
		c.editorOverlayOn = true
	case !session.Active() && c.editorOverlayOn:
		c.gridInput.PopModalOverlays(c.editorOverlay)
		c.editorOverlayOn = false
	}

	if row, ok := session.Row(); ok {
		c.cursorRow = row.Index()
		if w := session.Widgets(); w != nil && w.ActiveColumn() >= 0 {
			c.cursorCol = w.ActiveColumn()
		}
	}
	c.clampCursor()
}

func (c *Controller) mode() edit.Mode {
	if c.editor.Session().Active() {
		return edit.ModeEditing
	}
	return edit.ModeNavigate
}

func (c *Controller) cursor() (row, column int) { return c.cursorRow, c.cursorCol }

func (c *Controller) moveCursor(rows, columns int) {
	c.cursorRow += rows
	if columns == 0 {
		c.clampCursor()
		return
	}
	visible := panes.VisibleColumns(c.grid.Columns())
	pos := 0
	for i, col := range visible {
		if col == c.cursorCol {
			pos = i
		}
	}
	pos += columns
	if pos >= 0 && pos < len(visible) {
		c.cursorCol = visible[pos]
	}
	c.clampCursor()
}

func (c *Controller) clampCursor() {
	if c.cursorRow >= c.grid.Len() {
		c.cursorRow = c.grid.Len() - 1
	}
	if c.cursorRow < 0 {
		c.cursorRow = 0
	}
	visible := panes.VisibleColumns(c.grid.Columns())
	for _, col := range visible {
		if col == c.cursorCol {
			return
		}
	}
	if len(visible) > 0 {
		c.cursorCol = visible[0]
	}
}

func (c *Controller) onFocused(f func(edit.Widget)) func() {
	return func() {
		if w := c.editor.Session().Focused(); w != nil {
			f(w)
		}
	}
}

func (c *Controller) commit() {
	if !c.editor.Session().Commit() {
		log.Warn().Msg("row not committed, it is invalid")
	}
}

func (c *Controller) abandonAndMove(rows int) {
	c.editor.Session().Abandon()
	if !c.editor.Session().Active() {
		c.afterInput()
		c.moveCursor(rows, 0)
	}
}

// changeStatus applies a bulk status operation to the row under the cursor,
// recording how to restore its previous status.
func (c *Controller) changeStatus(explanation string, apply func(rowIndices ...int) int) {
	row, ok := c.grid.Row(c.cursorRow)
	if !ok || c.editor.Session().Active() {
		return
	}
	key := row.Key()
	previous, hadStatus := row.Data()[c.fields.Status]

	a := action.NewReversible(
		func() string { return explanation },
		func() {
			if r, ok := c.grid.RowByKey(key); ok && apply(r.Index()) > 0 {
				c.editor.UpdateRowState(r.Index())
			}
		},
		func() {
			r, ok := c.grid.RowByKey(key)
			if !ok {
				return
			}
			rec := r.Data()
			if hadStatus {
				rec[c.fields.Status] = previous
			} else {
				delete(rec, c.fields.Status)
			}
			r.SetData(rec)
			c.editor.UpdateRowState(r.Index())
			c.grid.Redraw()
		},
	)
	a.Do()
	c.history = append(c.history, a)
}

func (c *Controller) undo() {
	if len(c.history) == 0 {
		log.Debug().Msg("nothing to undo")
		return
	}
	a := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	a.Undo()
	log.Info().Msgf("undid '%s'", a.Explain())
}

// saveDirty persists every dirty row still in the grid and re-baselines the
// dirty tracker on the current contents.
func (c *Controller) saveDirty() {
	if c.editor.Session().Active() {
		log.Warn().Msg("not saving while a row is being edited")
		return
	}
	dirty := c.editor.DirtyByIndex()
	if len(dirty) == 0 {
		log.Info().Msg("no dirty rows to save")
		return
	}
	if c.persistence == nil {
		log.Warn().Msg("no persistence configured, dirty rows are only re-baselined")
		c.editor.Snapshot()
		return
	}

	indices := make([]int, 0, len(dirty))
	for i := range dirty {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	type pending struct {
		key string
		rec model.Record
	}
	batch := make([]pending, 0, len(indices))
	for _, i := range indices {
		row, ok := c.grid.Row(i)
		if !ok {
			continue
		}
		if c.creating[row.Key()] {
			log.Debug().Msgf("row %d is still being created, not saving it again", i)
			continue
		}
		if _, hasID := dirty[i].ID(c.fields.ID); !hasID {
			c.creating[row.Key()] = true
		}
		batch = append(batch, pending{key: row.Key(), rec: dirty[i]})
	}

	c.editor.Snapshot()
	log.Info().Msgf("saving %d dirty rows", len(batch))

	p := c.persistence
	go func() {
		for _, item := range batch {
			ctx, cancel := context.WithTimeout(context.Background(), tableedit.DefaultSaveTimeout)
			res, err := p.Save(ctx, item.rec)
			cancel()
			c.postSaveResult(tableedit.SaveResult{Key: item.key, Record: item.rec, Result: res, Err: err})
		}
	}()
}

// trackCreate notes a saved row without id, whose persistence will create it
// remotely.
func (c *Controller) trackCreate(ev tableedit.RowSaved) {
	if c.persistence == nil || ev.Data.Has(c.fields.Deleted) {
		return
	}
	if _, hasID := ev.Data.ID(c.fields.ID); !hasID {
		c.creating[ev.Key] = true
	}
}

// postSaveResult hands a persistence outcome to the event loop; it is called
// from persistence goroutines.
func (c *Controller) postSaveResult(r tableedit.SaveResult) {
	ev := &saveResultEvent{result: r}
	ev.SetEventNow()
	if err := c.screen.Post(ev); err != nil {
		log.Error().Err(err).Str("row", r.Key).Msg("could not deliver save result")
	}
}

// handleSaveResult reports a persistence outcome. A row created remotely
// takes on the id it was assigned, unless it has one by now.
func (c *Controller) handleSaveResult(r tableedit.SaveResult) {
	delete(c.creating, r.Key)
	if r.Err != nil {
		log.Error().Err(r.Err).Str("row", r.Key).Msg("could not persist row")
		return
	}
	log.Info().Str("id", r.Result.ID).Bool("created", r.Result.Created).Msg("persisted row")

	if !r.Result.Created || r.Result.ID == "" {
		return
	}
	row, ok := c.grid.RowByKey(r.Key)
	if !ok {
		return
	}
	rec := row.Data()
	if _, hasID := rec.ID(c.fields.ID); hasID {
		return
	}
	rec[c.fields.ID] = storage.IDValue(r.Result.ID)
	row.SetData(rec)
	c.editor.UpdateRowState(row.Index())
	c.grid.Redraw()
}

func (c *Controller) openHelp() {
	c.helpContent = c.rootPane.GetHelp()
	c.showHelp = true
}

func (c *Controller) statusInfo() panes.StatusInfo {
	info := panes.StatusInfo{
		Mode:       c.mode(),
		Row:        c.cursorRow,
		Rows:       c.grid.Len(),
		DirtyCount: len(c.editor.DirtyByIndex()),
		Pending:    string(c.gridTree.Pending()),
	}
	columns := c.grid.Columns()
	if c.cursorCol >= 0 && c.cursorCol < len(columns) {
		info.Column = columns[c.cursorCol].Name()
	}
	if s, ok := c.editor.Status(c.cursorRow); ok {
		info.RowStatus = s.String()
	}
	return info
}
