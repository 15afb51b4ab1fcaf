package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neovideo/internal/domain/maccms"
)

// Client операции ресурсного клиента, нужные браузеру
type Client interface {
	List(ctx context.Context) ([]maccms.Source, error)
	Delete(ctx context.Context, id int) (int, error)
	BatchImport(ctx context.Context, raw string) (int, error)
}

type (
	sourcesMsg  []maccms.Source
	deletedMsg  int
	importedMsg int
	errMsg      struct{ err error }
)

type Model struct {
	ctx    context.Context
	client Client

	table table.Model
	input textarea.Model
	help  help.Model
	keys  keyMap

	sources   []maccms.Source
	importing bool
	busy      bool
	status    string
	err       error
	width     int
}

func New(ctx context.Context, client Client) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	t.SetStyles(styles)

	ta := textarea.New()
	ta.Placeholder = "name,https://example.com/api.php/provide/vod/ (по строке на источник или JSON-массив)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	return Model{
		ctx:    ctx,
		client: client,
		table:  t,
		input:  ta,
		help:   help.New(),
		keys:   defaultKeys(),
		width:  80,
	}
}

// Run запускает браузер источников в терминале
func Run(ctx context.Context, client Client, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, client),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		sources, err := m.client.List(m.ctx)
		if err != nil {
			return errMsg{fmt.Errorf("ошибка загрузки списка: %w", err)}
		}
		return sourcesMsg(sources)
	}
}

func (m Model) remove(id int) tea.Cmd {
	return func() tea.Msg {
		deleted, err := m.client.Delete(m.ctx, id)
		if err != nil {
			return errMsg{fmt.Errorf("ошибка удаления %d: %w", id, err)}
		}
		return deletedMsg(deleted)
	}
}

func (m Model) batchImport(raw string) tea.Cmd {
	return func() tea.Msg {
		n, err := m.client.BatchImport(m.ctx, raw)
		if err != nil {
			return errMsg{fmt.Errorf("ошибка импорта: %w", err)}
		}
		return importedMsg(n)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width - 4))
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		m.input.SetWidth(msg.Width - 6)
		return m, nil

	case sourcesMsg:
		m.busy = false
		m.err = nil
		m.sources = msg
		m.table.SetRows(rows(msg))
		m.status = fmt.Sprintf("источников: %d", len(msg))
		return m, nil

	case deletedMsg:
		m.status = fmt.Sprintf("удален источник %d", int(msg))
		return m, m.load()

	case importedMsg:
		m.status = fmt.Sprintf("импортировано: %d", int(msg))
		return m, m.load()

	case errMsg:
		m.busy = false
		m.err = msg.err
		return m, nil
	}

	if m.importing {
		return m.updateImport(msg)
	}
	return m.updateBrowse(msg)
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Reload):
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.load()
		case key.Matches(k, m.keys.Delete):
			id, ok := m.selectedID()
			if !ok || m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.remove(id)
		case key.Matches(k, m.keys.Import):
			m.importing = true
			m.err = nil
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateImport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(k, m.keys.Cancel):
			m.importing = false
			m.input.Blur()
			return m, nil
		case key.Matches(k, m.keys.Submit):
			raw := m.input.Value()
			if strings.TrimSpace(raw) == "" {
				m.err = fmt.Errorf("нечего импортировать")
				return m, nil
			}
			m.importing = false
			m.busy = true
			m.input.Blur()
			return m, m.batchImport(raw)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selectedID() (int, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MacCMS sources"))
	b.WriteString("  ")
	b.WriteString(accentStyle.Render(fmt.Sprintf("%d", len(m.sources))))
	b.WriteString("\n\n")

	if m.importing {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.busy:
		b.WriteString(mutedStyle.Render("..."))
	case m.status != "":
		b.WriteString(successStyle.Render(m.status))
	}
	b.WriteString("\n")

	if m.importing {
		b.WriteString(m.help.View(importKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(browseKeys{m.keys}))
	}

	return panelStyle.Render(b.String())
}

func columns(width int) []table.Column {
	api := width - 6 - 24 - 6 - 8
	if api < 20 {
		api = 20
	}
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 6},
		{Title: "API", Width: api},
	}
}

func rows(sources []maccms.Source) []table.Row {
	out := make([]table.Row, 0, len(sources))
	for _, s := range sources {
		out = append(out, table.Row{strconv.Itoa(s.ID), s.Name, string(s.RespType), s.Api})
	}
	return out
}
