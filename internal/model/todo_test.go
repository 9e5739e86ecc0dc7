package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"garbage", "not json"},
		{"truncated", `{"todos_container": [{"name": "a"`},
		{"wrong shape", `{"todos_container": "nope"}`},
		{"empty object", `{}`},
		{"null", `null`},
		{"null container", `{"todos_container": null}`},
		{"top-level array", `[]`},
		{"key in other case", `{"TODOS_CONTAINER": [{"name": "a", "done": false, "important": false}]}`},
		{"invalid utf-8", "{\"todos_container\": [{\"name\": \"caf\xe9\", \"done\": false, \"important\": false}]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Decode([]byte(tt.in))
			if err == nil {
				t.Fatalf("Decode(%q) error = nil, want failure", tt.in)
			}
			if len(c.Todos) != 0 {
				t.Errorf("Decode(%q) todos = %v, want none", tt.in, c.Todos)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := Collection{Todos: []Todo{
		{Name: "b", Done: true},
		{Name: "a", Important: true},
		{Name: "a"},
	}}
	b, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmptyContainer(t *testing.T) {
	c, err := Decode([]byte(`{"todos_container": []}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(c.Todos) != 0 {
		t.Errorf("todos = %v, want none", c.Todos)
	}
}

func TestEncodeEmptyWritesArray(t *testing.T) {
	b, err := Encode(Collection{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := string(b), "{\n  \"todos_container\": []\n}\n"; got != want {
		t.Errorf("Encode(empty) = %q, want %q", got, want)
	}
}

func TestEncodeFieldNames(t *testing.T) {
	b, err := Encode(Collection{Todos: []Todo{{Name: "x"}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, key := range []string{`"todos_container"`, `"name": "x"`, `"done": false`, `"important": false`} {
		if !strings.Contains(string(b), key) {
			t.Errorf("encoded data missing %s:\n%s", key, b)
		}
	}
}

func TestMutationsActOnFirstMatch(t *testing.T) {
	c := Collection{}
	c.Add("dup")
	c.Add("other")
	c.Add("dup")

	if !c.MarkDone("dup") || !c.MarkImportant("dup") {
		t.Fatal("mark on existing name reported no match")
	}
	want := []Todo{
		{Name: "dup", Done: true, Important: true},
		{Name: "other"},
		{Name: "dup"},
	}
	if diff := cmp.Diff(want, c.Todos); diff != "" {
		t.Errorf("after marks (-want +got):\n%s", diff)
	}

	if !c.Remove("dup") {
		t.Fatal("Remove(dup) = false")
	}
	if diff := cmp.Diff(want[1:], c.Todos); diff != "" {
		t.Errorf("after remove (-want +got):\n%s", diff)
	}
}

func TestMissingNameIsNoop(t *testing.T) {
	c := Collection{Todos: []Todo{{Name: "a"}}}
	before := append([]Todo(nil), c.Todos...)

	if c.Remove("zz") || c.MarkDone("zz") || c.MarkImportant("zz") {
		t.Error("operation on missing name reported a match")
	}
	if diff := cmp.Diff(before, c.Todos); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
}

func TestStats(t *testing.T) {
	c := Collection{Todos: []Todo{{Name: "a", Done: true}, {Name: "b"}, {Name: "c"}}}
	done, pending := c.Stats()
	if done != 1 || pending != 2 {
		t.Errorf("Stats() = %d, %d; want 1, 2", done, pending)
	}
}
