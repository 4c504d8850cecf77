package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/avatardeck/internal/avatar"
)

// Source loads the initial avatar list.
type Source interface {
	FetchAvatars(ctx context.Context, page, limit int) ([]avatar.Record, error)
}

// Options configures the deck. Zero values fall back to defaults.
type Options struct {
	Title       string
	Subtitle    string
	Placeholder string
	Page        int
	Limit       int
	Now         func() time.Time
}

type field int

const (
	fieldName field = iota
	fieldImage
	fieldCount
)

// App ties together the avatar list, the form dialog and rendering.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	source Source
	logger *zap.Logger
	opts   Options

	roster  *avatar.Roster
	loadErr error
	closed  bool
	cursor  int

	// dialog
	modalOpen  bool
	editMode   bool
	editID     int64
	nameInput  textinput.Model
	imageInput textinput.Model
	focus      field
	formErr    error

	width    int
	height   int
	keys     keyMap
	formKeys formKeyMap
	help     help.Model
}

func New(ctx context.Context, source Source, logger *zap.Logger, opts Options) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Title == "" {
		opts.Title = "Welcome back, Admin!"
	}
	if opts.Subtitle == "" {
		opts.Subtitle = "Manage your avatars with ease ✨"
	}
	if opts.Placeholder == "" {
		opts.Placeholder = avatar.PlaceholderURL
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 3
	}
	ctx, cancel := context.WithCancel(ctx)

	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 128
	name.Prompt = ""
	image := textinput.New()
	image.Placeholder = "https://…"
	image.CharLimit = 2048
	image.Prompt = ""

	a := &App{
		ctx:        ctx,
		cancel:     cancel,
		source:     source,
		logger:     logger,
		opts:       opts,
		roster:     avatar.NewRoster(avatar.WithPlaceholder(opts.Placeholder), avatar.WithClock(opts.Now)),
		nameInput:  name,
		imageInput: image,
		keys:       newKeyMap(),
		formKeys:   newFormKeyMap(),
		help:       help.New(),
	}
	a.resizeInputs()
	return a
}

// Init issues the one-time load of the avatar list.
func (a *App) Init() tea.Cmd {
	return a.loadAvatars()
}

func (a *App) loadAvatars() tea.Cmd {
	if a.source == nil {
		return nil
	}
	ctx, page, limit := a.ctx, a.opts.Page, a.opts.Limit
	return func() tea.Msg {
		records, err := a.source.FetchAvatars(ctx, page, limit)
		return avatarsLoadedMsg{records: records, err: err}
	}
}

// Close cancels the pending load. Results that arrive afterwards are dropped.
func (a *App) Close() {
	a.closed = true
	a.cancel()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		a.resizeInputs()
	case avatarsLoadedMsg:
		a.applyLoad(m)
	case tea.KeyMsg:
		if a.modalOpen {
			return a.handleFormKey(m)
		}
		return a.handleDeckKey(m)
	}
	return a, nil
}

func (a *App) applyLoad(m avatarsLoadedMsg) {
	if a.closed || a.ctx.Err() != nil {
		a.logger.Debug("dropping avatar load after teardown")
		return
	}
	if m.err != nil {
		a.loadErr = m.err
		if !errors.Is(m.err, context.Canceled) {
			a.logger.Error("load avatars", zap.Error(m.err))
		}
		return
	}
	// Records added while the load was in flight stay after the fetched ones.
	local := a.roster.Records()
	merged := make([]avatar.Record, 0, len(m.records)+len(local))
	merged = append(merged, m.records...)
	a.roster.Reset(append(merged, local...))
	if len(local) == 0 {
		a.cursor = 0
	} else {
		a.cursor += len(m.records)
	}
	a.logger.Info("avatars loaded", zap.Int("count", len(m.records)), zap.Int("local", len(local)))
}

func (a *App) handleDeckKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(m, a.keys.New):
		a.OpenCreateDialog()
		return a, textinput.Blink
	case key.Matches(m, a.keys.Edit):
		rec, ok := a.roster.At(a.cursor)
		if !ok {
			return a, nil
		}
		a.OpenEditDialog(rec)
		return a, textinput.Blink
	case key.Matches(m, a.keys.Left):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Right):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-columnsFor(a.layoutWidth()))
	case key.Matches(m, a.keys.Down):
		a.moveCursor(columnsFor(a.layoutWidth()))
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.formKeys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(m, a.formKeys.Close):
		a.CloseDialog()
		return a, nil
	case key.Matches(m, a.formKeys.Submit):
		a.Submit()
		return a, nil
	case key.Matches(m, a.formKeys.Next):
		a.setFocus((a.focus + 1) % fieldCount)
		return a, nil
	case key.Matches(m, a.formKeys.Prev):
		a.setFocus((a.focus + fieldCount - 1) % fieldCount)
		return a, nil
	}

	var cmd tea.Cmd
	if a.focus == fieldName {
		a.nameInput, cmd = a.nameInput.Update(m)
	} else {
		a.imageInput, cmd = a.imageInput.Update(m)
	}
	return a, cmd
}

// OpenCreateDialog clears the form and opens it for a new record.
func (a *App) OpenCreateDialog() {
	a.nameInput.SetValue("")
	a.imageInput.SetValue("")
	a.editMode = false
	a.editID = 0
	a.formErr = nil
	a.modalOpen = true
	a.setFocus(fieldName)
}

// OpenEditDialog pre-fills the form from rec and targets it by id.
func (a *App) OpenEditDialog(rec avatar.Record) {
	a.nameInput.SetValue(rec.FullName())
	a.nameInput.CursorEnd()
	a.imageInput.SetValue(rec.AvatarURL)
	a.imageInput.CursorEnd()
	a.editID = rec.ID
	a.editMode = true
	a.formErr = nil
	a.modalOpen = true
	a.setFocus(fieldName)
}

// Submit commits the form. Validation failures are kept in the dialog's
// error line and leave the list untouched. An edit whose target no longer
// exists is a no-op.
func (a *App) Submit() {
	if !a.modalOpen {
		return
	}
	form := avatar.Form{Name: a.nameInput.Value(), ImageURL: a.imageInput.Value()}
	if a.editMode {
		ok, err := a.roster.Update(a.editID, form)
		if err != nil {
			a.formErr = err
			return
		}
		if !ok {
			a.logger.Debug("edit target gone", zap.Int64("id", a.editID))
		}
	} else {
		if _, err := a.roster.Add(form); err != nil {
			a.formErr = err
			return
		}
		a.cursor = a.roster.Len() - 1
	}
	a.resetForm()
}

// CloseDialog hides the dialog without committing. Field values are kept.
func (a *App) CloseDialog() {
	a.modalOpen = false
	a.formErr = nil
	a.nameInput.Blur()
	a.imageInput.Blur()
}

// Records returns a snapshot of the current list.
func (a *App) Records() []avatar.Record {
	return a.roster.Records()
}

func (a *App) ModalOpen() bool { return a.modalOpen }

func (a *App) EditMode() bool { return a.editMode }

func (a *App) resetForm() {
	a.nameInput.SetValue("")
	a.imageInput.SetValue("")
	a.nameInput.Blur()
	a.imageInput.Blur()
	a.modalOpen = false
	a.editMode = false
	a.editID = 0
	a.formErr = nil
}

func (a *App) resizeInputs() {
	w := a.dialogWidth() - 4
	a.nameInput.Width = w
	a.imageInput.Width = w
}

func (a *App) setFocus(f field) {
	a.focus = f
	if f == fieldName {
		a.imageInput.Blur()
		a.nameInput.Focus()
		return
	}
	a.nameInput.Blur()
	a.imageInput.Focus()
}

func (a *App) moveCursor(delta int) {
	n := a.roster.Len()
	if n == 0 {
		a.cursor = 0
		return
	}
	next := a.cursor + delta
	if next < 0 || next >= n {
		return
	}
	a.cursor = next
}

// messages
type avatarsLoadedMsg struct {
	records []avatar.Record
	err     error
}
