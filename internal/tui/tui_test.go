package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/autoartists/internal/autoartists"
	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/library"
	"github.com/handiism/autoartists/internal/model"
)

type memoryStore struct {
	items  []*model.Item
	stored map[string][]string
}

func (s *memoryStore) Items(ctx context.Context, q library.Query) ([]*model.Item, error) {
	var out []*model.Item
	for _, item := range s.items {
		if q.Match(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memoryStore) Store(ctx context.Context, item *model.Item, artists []string) error {
	s.stored[item.Path] = artists
	return nil
}

func newTestModel() (Model, *memoryStore) {
	store := &memoryStore{
		items: []*model.Item{
			{Path: "1.mp3", Artist: "A & B", Title: "One"},
			{Path: "2.mp3", Artist: "C", Title: "Two (feat. D)"},
		},
		stored: map[string][]string{},
	}
	return NewModel(config.DefaultSettings(), store, nil), store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// plan runs the planning command synchronously and feeds its result back.
func plan(t *testing.T, m Model) Model {
	t.Helper()
	m = update(t, m, key("enter"))
	if m.state != StatePlanning {
		t.Fatalf("state = %v, want StatePlanning", m.state)
	}
	return update(t, m, m.startPlan()())
}

func TestModel_PlanAndSelect(t *testing.T) {
	m, store := newTestModel()
	m = plan(t, m)

	if m.state != StateSelect {
		t.Fatalf("state = %v, want StateSelect (err %v)", m.state, m.err)
	}
	if got := len(m.Selection()); got != 2 {
		t.Fatalf("Selection() = %d changes, want all 2 preselected", got)
	}

	m = update(t, m, key(" "))
	if got := m.Selection(); len(got) != 1 || got[0].Item.Path != "2.mp3" {
		t.Fatalf("Selection() after toggle = %v", got)
	}

	m = update(t, m, key("enter"))
	if m.state != StateWriting {
		t.Fatalf("state = %v, want StateWriting", m.state)
	}
	m = update(t, m, m.startApply()())

	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete (err %v)", m.state, m.err)
	}
	if len(store.stored) != 1 || store.stored["2.mp3"] == nil {
		t.Errorf("stored = %v, want only 2.mp3", store.stored)
	}
	if m.written != 1 {
		t.Errorf("written = %d, want 1", m.written)
	}
}

func TestModel_SelectKeys(t *testing.T) {
	m, _ := newTestModel()
	m = plan(t, m)

	m = update(t, m, key("n"))
	if len(m.Selection()) != 0 {
		t.Error("n should clear the selection")
	}
	m = update(t, m, key("j"))
	m = update(t, m, key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m = update(t, m, key("x"))
	if got := m.Selection(); len(got) != 1 || got[0].Item.Path != "2.mp3" {
		t.Errorf("Selection() = %v", got)
	}
	m = update(t, m, key("a"))
	if len(m.Selection()) != 2 {
		t.Error("a should select everything")
	}

	m = update(t, m, key("esc"))
	if m.state != StateInput || m.plan != nil {
		t.Errorf("esc should return to input, state = %v", m.state)
	}
}

func TestModel_NothingToChange(t *testing.T) {
	m, _ := newTestModel()
	m.textInput.SetValue("no-such-track")
	m = plan(t, m)

	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	if m.plan.EmptyMessage() != "No results found" {
		t.Errorf("EmptyMessage() = %q", m.plan.EmptyMessage())
	}
}

func TestModel_CancelPlanning(t *testing.T) {
	m, _ := newTestModel()
	m = update(t, m, key("enter"))
	m = update(t, m, key("esc"))

	if m.state != StateError || !errors.Is(m.err, autoartists.ErrCanceled) {
		t.Errorf("state = %v, err = %v", m.state, m.err)
	}

	m = update(t, m, key("r"))
	if m.state != StateInput || m.ctx.Err() != nil {
		t.Errorf("reset should give a fresh input state, got %v", m.state)
	}
}

func TestSelection(t *testing.T) {
	change := &model.Change{Item: &model.Item{Path: "a.mp3"}}
	s := selection{chosen: map[*model.Change]bool{change: true}}

	mode, err := s.ConfirmAll(context.Background(), 1)
	if err != nil || mode != autoartists.ModeSelect {
		t.Errorf("ConfirmAll() = %v, %v", mode, err)
	}
	if ok, _ := s.ConfirmItem(context.Background(), change); !ok {
		t.Error("ConfirmItem() = false for a chosen change")
	}
	if ok, _ := s.ConfirmItem(context.Background(), &model.Change{}); ok {
		t.Error("ConfirmItem() = true for an unchosen change")
	}
}
