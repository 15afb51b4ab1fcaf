package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neovideo/internal/domain/maccms"
)

type fakeClient struct {
	sources  []maccms.Source
	listErr  error
	deleted  []int
	imported []string
}

func (f *fakeClient) List(context.Context) ([]maccms.Source, error) {
	return f.sources, f.listErr
}

func (f *fakeClient) Delete(_ context.Context, id int) (int, error) {
	f.deleted = append(f.deleted, id)
	kept := f.sources[:0]
	for _, s := range f.sources {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	f.sources = kept
	return id, nil
}

func (f *fakeClient) BatchImport(_ context.Context, raw string) (int, error) {
	f.imported = append(f.imported, raw)
	return 2, nil
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// step применяет сообщение и сразу исполняет возвращенную команду
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return model, nil
	}
	return model, cmd()
}

func loaded(t *testing.T, c *fakeClient) Model {
	t.Helper()
	m := New(context.Background(), c)
	m, _ = step(t, m, m.Init()())
	return m
}

func testSources() []maccms.Source {
	return []maccms.Source{
		{ID: 1, Name: "one", Api: "https://one.example/api.php", RespType: maccms.RespTypeJSON},
		{ID: 2, Name: "two", Api: "https://two.example/api.php", RespType: maccms.RespTypeXML},
	}
}

func TestModel_InitLoadsSources(t *testing.T) {
	m := loaded(t, &fakeClient{sources: testSources()})

	require.Len(t, m.table.Rows(), 2)
	assert.Equal(t, "one", m.table.Rows()[0][1])
	assert.Equal(t, "xml", m.table.Rows()[1][2])
	assert.Contains(t, m.View(), "MacCMS sources")
}

func TestModel_LoadError(t *testing.T) {
	m := loaded(t, &fakeClient{listErr: errors.New("boom")})

	require.Error(t, m.err)
	assert.Contains(t, m.View(), "boom")
}

func TestModel_DeleteSelected(t *testing.T) {
	c := &fakeClient{sources: testSources()}
	m := loaded(t, c)

	m, msg := step(t, m, keyRune('d'))
	assert.Equal(t, deletedMsg(1), msg)
	assert.Equal(t, []int{1}, c.deleted)

	m, msg = step(t, m, msg)
	m, _ = step(t, m, msg)

	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "2", m.table.Rows()[0][0])
	assert.False(t, m.busy)
}

func TestModel_DeleteOnEmptyTable(t *testing.T) {
	c := &fakeClient{}
	m := loaded(t, c)

	_, msg := step(t, m, keyRune('d'))
	assert.Nil(t, msg)
	assert.Empty(t, c.deleted)
}

func TestModel_ImportFlow(t *testing.T) {
	c := &fakeClient{sources: testSources()}
	m := loaded(t, c)

	m, _ = step(t, m, keyRune('i'))
	require.True(t, m.importing)

	// в режиме импорта q печатается, а не завершает программу
	m, msg := step(t, m, keyRune('q'))
	assert.NotEqual(t, tea.QuitMsg{}, msg)
	assert.Equal(t, "q", m.input.Value())

	m.input.SetValue("a,https://a.example/api.php\nb,https://b.example/api.php")
	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.importing)
	assert.Equal(t, importedMsg(2), msg)
	require.Len(t, c.imported, 1)
	assert.Contains(t, c.imported[0], "b.example")

	m, msg = step(t, m, msg)
	assert.Equal(t, "импортировано: 2", m.status)
	_, ok := msg.(sourcesMsg)
	assert.True(t, ok)
}

func TestModel_ImportEmptyAndCancel(t *testing.T) {
	c := &fakeClient{}
	m := loaded(t, c)

	m, _ = step(t, m, keyRune('i'))
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, msg)
	assert.True(t, m.importing)
	assert.Error(t, m.err)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.importing)
	assert.Empty(t, c.imported)
}

func TestModel_ReloadAndQuit(t *testing.T) {
	c := &fakeClient{}
	m := loaded(t, c)

	c.sources = testSources()
	m, msg := step(t, m, keyRune('r'))
	m, _ = step(t, m, msg)
	assert.Len(t, m.table.Rows(), 2)

	_, msg = step(t, m, keyRune('q'))
	assert.Equal(t, tea.QuitMsg{}, msg)
}

func TestModel_WindowSize(t *testing.T) {
	m := loaded(t, &fakeClient{sources: testSources()})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.help.Width)
}
