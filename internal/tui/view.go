package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/avatardeck/internal/avatar"
)

const (
	defaultWidth = 80
	cardWidth    = 30
	cardGap      = 2
	emptyMessage = "No avatars yet. Add your first one!"
	loadFailed   = "could not load avatars"
)

// columnsFor mirrors the one/two/three column breakpoints of the deck grid.
func columnsFor(width int) int {
	switch {
	case width < 60:
		return 1
	case width < 96:
		return 2
	default:
		return 3
	}
}

func (a *App) layoutWidth() int {
	if a.width > 0 {
		return a.width
	}
	return defaultWidth
}

// View renders the current state. It has no side effects.
func (a *App) View() string {
	width := a.layoutWidth()

	main := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(width),
		"",
		a.renderGrid(width),
	)
	bottom := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(width, lipgloss.Right, fabStyle.Render("＋ [n] New avatar")),
		a.renderHelp(),
	)

	gap := 1
	if a.height > 0 {
		gap = max(a.height-lipgloss.Height(main)-lipgloss.Height(bottom), 1)
	}
	page := main + strings.Repeat("\n", gap) + bottom

	if !a.modalOpen {
		return page
	}
	if a.width <= 0 || a.height <= 0 {
		return page + "\n\n" + a.renderDialog()
	}
	return overlayCenter(page, a.renderDialog(), a.width, a.height)
}

func (a *App) renderHeader(width int) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(width, lipgloss.Center, titleStyle.Render(a.opts.Title)),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, subtitleStyle.Render(a.opts.Subtitle)),
	)
}

func (a *App) renderGrid(width int) string {
	records := a.roster.Records()
	if len(records) == 0 {
		lines := []string{mutedStyle.Render(emptyMessage)}
		if a.loadErr != nil {
			lines = append(lines, errorStyle.Render(loadFailed))
		}
		for i := range lines {
			lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, lines[i])
		}
		return strings.Join(lines, "\n")
	}

	cols := columnsFor(width)
	cw := min(cardWidth, (width-(cols-1)*cardGap)/cols)
	spacer := strings.Repeat(" ", cardGap)

	var rows []string
	for start := 0; start < len(records); start += cols {
		end := min(start+cols, len(records))
		cells := make([]string, 0, 2*cols)
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, spacer)
			}
			cells = append(cells, renderCard(records[i], cw, i == a.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

// renderCard draws one profile card of the given outer width.
func renderCard(rec avatar.Record, width int, selected bool) string {
	inner := max(width-4, 4)
	button := editButtonIdleStyle.Render("[e] Edit")
	style := cardStyle
	if selected {
		button = editButtonStyle.Render("[e] Edit")
		style = cardSelectedStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		badgeStyle.Render(initials(rec)),
		urlStyle.Render(ansi.Truncate(rec.AvatarURL, inner, "…")),
		"",
		nameStyle.Render(ansi.Truncate(rec.FullName(), inner, "…")),
		"",
		button,
	)
	return style.Width(width - 2).Render(body)
}

func initials(rec avatar.Record) string {
	var b strings.Builder
	for _, part := range []string{rec.FirstName, rec.LastName} {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}

func (a *App) renderDialog() string {
	title, action := "Create New Avatar", "Add Avatar"
	if a.editMode {
		title, action = "Edit Avatar", "Update Avatar"
	}
	inputW := a.dialogWidth()

	lines := []string{
		modalTitleStyle.Render(title),
		a.renderField("Full Name", a.nameInput.View(), a.focus == fieldName, inputW),
		a.renderField("Image URL (optional)", a.imageInput.View(), a.focus == fieldImage, inputW),
	}
	if a.formErr != nil {
		lines = append(lines, errorStyle.Render(formHint(a.formErr)))
	}
	lines = append(lines,
		"",
		lipgloss.PlaceHorizontal(inputW, lipgloss.Right, submitStyle.Render("[enter] "+action)),
		mutedStyle.Render("esc close · tab next field"),
	)
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) renderField(label, input string, focused bool, width int) string {
	ls, bs := labelStyle, inputBoxStyle
	if focused {
		ls, bs = labelFocusStyle, inputBoxFocusStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left, ls.Render(label), bs.Width(width-2).Render(input))
}

func (a *App) dialogWidth() int {
	return min(max(a.layoutWidth()-16, 20), 48)
}

func formHint(err error) string {
	switch {
	case errors.Is(err, avatar.ErrNameRequired):
		return "Full name is required"
	case errors.Is(err, avatar.ErrInvalidImageURL):
		return "Image URL must be an http(s) URL"
	default:
		return err.Error()
	}
}

func (a *App) renderHelp() string {
	if a.modalOpen {
		return a.help.View(a.formKeys)
	}
	return a.help.View(a.keys)
}
