package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todomgr/internal/model"
	"github.com/idilsaglam/todomgr/internal/ui"
)

// item adapts a todo to list.Item.
type item struct {
	todo model.Todo
}

func (i item) FilterValue() string { return i.todo.Name }

// itemDelegate renders one todo per line.
type itemDelegate struct {
	theme  ui.Theme
	styles ui.Styles
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}
	box := d.styles.Muted.Render(d.theme.BoxUnchecked)
	name := it.todo.Name
	if it.todo.Done {
		box = d.styles.Success.Render(d.theme.BoxChecked)
		name = d.styles.Done.Render(name)
	}
	flag := " "
	if it.todo.Important {
		flag = d.styles.Pending.Render(d.theme.Flag)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, box, flag, name)
}
