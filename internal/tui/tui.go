// Package tui is the interactive browser over the todo store.
//
// Each key action runs one store operation and then reloads the list from
// disk, so the screen always shows what the data file holds. A file watcher
// triggers the same reload when another process rewrites the data file.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todomgr/internal/model"
	"github.com/idilsaglam/todomgr/internal/ui"
)

// Store is what the browser needs from the todo store.
type Store interface {
	Path() string
	Todos() ([]model.Todo, error)
	Add(name string) error
	Remove(name string) error
	MarkDone(name string) error
	MarkImportant(name string) error
}

// Options configures the browser.
type Options struct {
	Theme  ui.Theme
	Color  string
	Logger *log.Logger
	Watch  bool // reload when the data file changes on disk
	Input  io.Reader
	Output io.Writer
}

type keyMap struct {
	done, important, remove, add, reload key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		done:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "done")),
		important: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "important")),
		remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.done, k.important, k.remove, k.add, k.reload}
}

type browser struct {
	store  Store
	logger *log.Logger
	styles ui.Styles
	theme  ui.Theme
	keys   keyMap
	list   list.Model

	adding bool
	input  textinput.Model
	status string

	watch *watcher
}

func newBrowser(s Store, opts Options) (*browser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	out := opts.Output
	if out == nil {
		out = io.Discard
	}
	styles := opts.Theme.Styles(ui.NewRenderer(out, opts.Theme, opts.Color))

	l := list.New(nil, itemDelegate{theme: opts.Theme, styles: styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title
	l.Styles.HelpStyle = styles.Muted
	l.Styles.PaginationStyle = styles.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	keys := newKeyMap()
	l.AdditionalShortHelpKeys = keys.bindings
	l.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 200

	b := &browser{
		store:  s,
		logger: logger,
		styles: styles,
		theme:  opts.Theme,
		keys:   keys,
		list:   l,
		input:  ti,
	}
	if err := b.reload(); err != nil {
		return nil, err
	}
	return b, nil
}

// Run shows the browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, s Store, opts Options) error {
	b, err := newBrowser(s, opts)
	if err != nil {
		return err
	}
	if opts.Watch {
		w, err := newWatcher(s.Path())
		if err != nil {
			b.logger.Warn("live reload disabled", "err", err)
		} else {
			b.watch = w
			defer w.Close()
		}
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	_, err = tea.NewProgram(b, progOpts...).Run()
	if err != nil && ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}

func (b *browser) reload() error {
	todos, err := b.store.Todos()
	if err != nil {
		return err
	}
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, item{todo: t})
	}
	b.list.SetItems(items)

	c := model.Collection{Todos: todos}
	done, pending := c.Stats()
	b.list.Title = fmt.Sprintf("Todos  %s %d  %s %d  Total %d  %s",
		b.theme.BoxChecked, done,
		b.theme.BoxUnchecked, pending,
		len(todos),
		ui.ProgressBar(done, len(todos), 20),
	)
	return nil
}

// apply runs one store operation on the selected todo, then reloads.
func (b *browser) apply(verb string, op func(string) error) {
	it, ok := b.list.SelectedItem().(item)
	if !ok {
		return
	}
	b.run(verb, it.todo.Name, op)
}

func (b *browser) run(verb, name string, op func(string) error) {
	if err := op(name); err != nil {
		b.logger.Error(verb+" failed", "name", name, "err", err)
		b.status = err.Error()
		return
	}
	b.logger.Debug(verb, "name", name)
	b.status = fmt.Sprintf("%s: %s", verb, name)
	if err := b.reload(); err != nil {
		b.status = err.Error()
	}
}

func (b *browser) Init() tea.Cmd {
	if b.watch != nil {
		return b.watch.wait()
	}
	return nil
}

func (b *browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width-4, msg.Height-6)
		return b, nil
	case fileChangedMsg:
		if err := b.reload(); err != nil {
			b.status = err.Error()
		}
		return b, b.watch.wait()
	case watchErrMsg:
		b.logger.Warn("watching data file", "err", msg.err)
		return b, b.watch.wait()
	}

	if b.adding {
		return b.updateAdding(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok && b.list.FilterState() != list.Filtering {
		switch {
		case km.String() == "q" || km.String() == "esc":
			return b, tea.Quit
		case key.Matches(km, b.keys.done):
			b.apply("Marked as done", b.store.MarkDone)
			return b, nil
		case key.Matches(km, b.keys.important):
			b.apply("Marked as important", b.store.MarkImportant)
			return b, nil
		case key.Matches(km, b.keys.remove):
			b.apply("Removed", b.store.Remove)
			return b, nil
		case key.Matches(km, b.keys.add):
			b.adding = true
			b.status = ""
			b.input.SetValue("")
			return b, b.input.Focus()
		case key.Matches(km, b.keys.reload):
			if err := b.reload(); err != nil {
				b.status = err.Error()
			}
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b *browser) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			name := strings.TrimSpace(b.input.Value())
			if name == "" {
				b.status = "Name cannot be empty"
				return b, nil
			}
			b.stopAdding()
			b.run("Added", name, b.store.Add)
			b.list.Select(len(b.list.Items()) - 1)
			return b, nil
		case "esc":
			b.stopAdding()
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *browser) stopAdding() {
	b.adding = false
	b.input.SetValue("")
	b.input.Blur()
}

func (b *browser) View() string {
	var sb strings.Builder
	sb.WriteString(b.list.View())
	if b.adding {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Frame.Render("Add todo\n" + b.input.View()))
	}
	if b.status != "" {
		sb.WriteString("\n")
		sb.WriteString(b.styles.Muted.Render(b.status))
	}
	return b.styles.Frame.Render(sb.String())
}
