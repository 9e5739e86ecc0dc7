package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"unicode/utf8"
)

// Todo is one task item. Name doubles as the lookup key; it is not unique and
// every lookup acts on the first match.
type Todo struct {
	Name      string `json:"name"`
	Done      bool   `json:"done"`
	Important bool   `json:"important"`
}

// Collection is the whole data file: an ordered list wrapped in one object.
type Collection struct {
	Todos []Todo `json:"todos_container"`
}

const containerKey = "todos_container"

var (
	errEmpty       = errors.New("empty data file")
	errInvalidUTF8 = errors.New("data file is not valid UTF-8")
	errNoContainer = errors.New("data file has no " + containerKey + " array")
)

// Decode parses a data file. The container key must be present with exactly
// that spelling and hold an array. Callers decide what a failure means; the
// store treats it as an empty collection.
func Decode(b []byte) (Collection, error) {
	if len(b) == 0 {
		return Collection{}, errEmpty
	}
	if !utf8.Valid(b) {
		return Collection{}, errInvalidUTF8
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return Collection{}, err
	}
	raw, ok := top[containerKey]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return Collection{}, errNoContainer
	}
	var todos []Todo
	if err := json.Unmarshal(raw, &todos); err != nil {
		return Collection{}, err
	}
	return Collection{Todos: todos}, nil
}

// Encode renders the collection as pretty-printed JSON with a trailing newline.
func Encode(c Collection) ([]byte, error) {
	if c.Todos == nil {
		c.Todos = []Todo{}
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Index returns the position of the first todo called name, or -1.
func (c *Collection) Index(name string) int {
	return slices.IndexFunc(c.Todos, func(t Todo) bool { return t.Name == name })
}

// Add appends a fresh todo; ordering is append-only.
func (c *Collection) Add(name string) {
	c.Todos = append(c.Todos, Todo{Name: name})
}

// Remove deletes the first match and reports whether one existed.
func (c *Collection) Remove(name string) bool {
	i := c.Index(name)
	if i < 0 {
		return false
	}
	c.Todos = slices.Delete(c.Todos, i, i+1)
	return true
}

func (c *Collection) MarkDone(name string) bool {
	i := c.Index(name)
	if i < 0 {
		return false
	}
	c.Todos[i].Done = true
	return true
}

func (c *Collection) MarkImportant(name string) bool {
	i := c.Index(name)
	if i < 0 {
		return false
	}
	c.Todos[i].Important = true
	return true
}

// Stats counts done and pending todos.
func (c Collection) Stats() (done, pending int) {
	for _, t := range c.Todos {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
