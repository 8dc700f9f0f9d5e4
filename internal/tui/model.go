// ABOUTME: Bubble Tea front end for the journal editor.
// ABOUTME: Text area for the entry plus the add-media menu, link prompt and file prompt.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harper/journl/internal/ingest"
	"github.com/harper/journl/internal/journal"
	"github.com/harper/journl/internal/ui"
)

// filePrompt is which file picker is showing, if any.
type filePrompt int

const (
	noFilePrompt filePrompt = iota
	imagePrompt
	documentPrompt
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f7a5f"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3b5a3"))
	menuStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// SaveFunc persists the entry body when the user presses ctrl+s.
type SaveFunc func(body string) error

// filesReadMsg carries files read off the event loop back into Update.
type filesReadMsg struct {
	prompt   filePrompt
	files    []ingest.File
	rejected []ingest.Rejection
}

type model struct {
	ctx    context.Context
	editor *journal.Editor
	save   SaveFunc

	body   textarea.Model
	prompt textinput.Model
	files  filePrompt

	// reading is set while a readFiles command is in flight.
	reading bool

	selected int
	status   string
	failed   bool

	width  int
	height int
}

func newModel(ctx context.Context, ed *journal.Editor, save SaveFunc) model {
	ta := textarea.New()
	ta.Placeholder = "What's on your mind today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(ed.Body())
	ta.Focus()

	ti := textinput.New()
	ti.CharLimit = 2048

	return model{
		ctx:    ctx,
		editor: ed,
		save:   save,
		body:   ta,
		prompt: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.body.SetWidth(max(20, msg.Width-4))
		m.body.SetHeight(max(5, msg.Height/2))
		return m, nil

	case filesReadMsg:
		return m.applyFiles(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			m.editor.SetBody(m.body.Value())
			return m, tea.Quit
		case "ctrl+s":
			return m.saveBody(), nil
		}

		switch {
		case m.files != noFilePrompt:
			return m.updateFilePrompt(msg)
		case m.editor.State() == journal.LinkInputOpen:
			return m.updateLinkPrompt(msg)
		case m.editor.State() == journal.OptionsOpen:
			return m.updateOptions(msg)
		default:
			return m.updateWriting(msg)
		}
	}
	return m, nil
}

func (m model) updateWriting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	media := m.editor.Media()
	switch msg.String() {
	case "ctrl+a":
		m.setErr(m.editor.ToggleOptions())
		return m, nil
	case "ctrl+n":
		if m.selected < len(media)-1 {
			m.selected++
		}
		return m, nil
	case "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "ctrl+x":
		if len(media) == 0 {
			return m, nil
		}
		target := media[min(m.selected, len(media)-1)]
		if err := m.editor.Remove(m.ctx, target.AttachmentID()); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.setOK("Removed " + target.Label())
		if m.selected > 0 && m.selected >= len(media)-1 {
			m.selected--
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	m.editor.SetBody(m.body.Value())
	return m, cmd
}

func (m model) updateOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i":
		return m.openFilePrompt(imagePrompt, "image paths (space separated)")
	case "d":
		return m.openFilePrompt(documentPrompt, "PDF / Word document paths")
	case "l":
		if err := m.editor.OpenLinkInput(); err != nil {
			m.setErr(err)
			return m, nil
		}
		m.prompt.Placeholder = "https://…"
		m.prompt.SetValue(m.editor.LinkInput())
		m.prompt.Focus()
		m.body.Blur()
		return m, textinput.Blink
	case "esc":
		m.setErr(m.editor.Cancel())
	case "ctrl+a":
		m.setErr(m.editor.ToggleOptions())
	}
	return m, nil
}

func (m model) openFilePrompt(kind filePrompt, placeholder string) (tea.Model, tea.Cmd) {
	m.files = kind
	m.prompt.Placeholder = placeholder
	m.prompt.SetValue("")
	m.prompt.Focus()
	m.body.Blur()
	return m, textinput.Blink
}

func (m model) closePrompt() model {
	m.files = noFilePrompt
	m.prompt.SetValue("")
	m.prompt.Blur()
	m.body.Focus()
	return m
}

func (m model) updateLinkPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setErr(m.editor.Cancel())
		return m.closePrompt(), nil
	case "enter":
		m.editor.SetLinkInput(m.prompt.Value())
		link, err := m.editor.SubmitLink(m.ctx)
		if err != nil {
			m.setErr(err)
			return m, nil
		}
		m.setOK("Added link " + link.URL)
		return m.closePrompt(), nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	m.editor.SetLinkInput(m.prompt.Value())
	return m, cmd
}

func (m model) updateFilePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.reading {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.setErr(m.editor.Cancel())
		return m.closePrompt(), nil
	case "enter":
		paths := strings.Fields(m.prompt.Value())
		if len(paths) == 0 {
			m.setErr(fmt.Errorf("enter at least one path"))
			return m, nil
		}
		m.reading = true
		m.setOK("Reading files…")
		return m, readFiles(m.files, paths)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// readFiles loads the selected paths outside the event loop.
func readFiles(kind filePrompt, paths []string) tea.Cmd {
	return func() tea.Msg {
		files, rejected := ingest.OpenFiles(paths)
		return filesReadMsg{prompt: kind, files: files, rejected: rejected}
	}
}

func (m model) applyFiles(msg filesReadMsg) model {
	m.reading = false
	var (
		b   ingest.Batch
		err error
	)
	switch msg.prompt {
	case imagePrompt:
		b, err = m.editor.AddImages(m.ctx, msg.files)
	case documentPrompt:
		b, err = m.editor.AddDocuments(m.ctx, msg.files)
	default:
		return m
	}
	m = m.closePrompt()

	rejected := append(msg.rejected, b.Rejected...)
	switch {
	case err != nil:
		m.setErr(err)
	case len(rejected) > 0:
		names := make([]string, len(rejected))
		for i, r := range rejected {
			names[i] = r.Name
		}
		m.setErr(fmt.Errorf("added %d, rejected %s", len(b.Accepted), strings.Join(names, ", ")))
	default:
		m.setOK(fmt.Sprintf("Added %d attachment(s)", len(b.Accepted)))
	}
	return m
}

func (m model) saveBody() model {
	m.editor.SetBody(m.body.Value())
	if m.save == nil {
		m.setOK("Nothing to save to; the entry prints on exit")
		return m
	}
	if err := m.save(m.editor.Body()); err != nil {
		m.setErr(err)
		return m
	}
	m.setOK("Entry saved")
	return m
}

func (m *model) setErr(err error) {
	if err == nil {
		return
	}
	m.status = err.Error()
	m.failed = true
}

func (m *model) setOK(msg string) {
	m.status = msg
	m.failed = false
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("journl") + "\n\n")
	sb.WriteString(m.body.View() + "\n\n")

	media := m.editor.Media()
	if len(media) > 0 {
		for i, a := range media {
			line := fmt.Sprintf("%s %s  %s", ui.Icon(a), a.Label(), ui.Detail(a))
			if i == m.selected {
				line = selectedStyle.Render("› " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	switch {
	case m.files != noFilePrompt:
		label := "Add images"
		if m.files == documentPrompt {
			label = "Add documents"
		}
		sb.WriteString(menuStyle.Render(label+"\n"+m.prompt.View()) + "\n")
	case m.editor.State() == journal.LinkInputOpen:
		sb.WriteString(menuStyle.Render("Add link\n"+m.prompt.View()) + "\n")
	case m.editor.State() == journal.OptionsOpen:
		sb.WriteString(menuStyle.Render("[i] Image   [l] Link   [d] Document   [esc] Close") + "\n")
	}

	if m.status != "" {
		style := okStyle
		if m.failed {
			style = errStyle
		}
		sb.WriteString(style.Render(m.status) + "\n")
	}

	sb.WriteString(helpStyle.Render("ctrl+a add media · ctrl+n/p select · ctrl+x remove · ctrl+s save · ctrl+q quit"))
	return sb.String()
}

// Run starts the editor and returns the final entry body.
func Run(ctx context.Context, ed *journal.Editor, save SaveFunc) (string, error) {
	p := tea.NewProgram(newModel(ctx, ed, save), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return ed.Body(), err
	}
	return ed.Body(), nil
}
