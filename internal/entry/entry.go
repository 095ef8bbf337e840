// Package entry implements the line-based store behind every basm edit:
// parsing a file's text into recognized entries plus opaque lines,
// applying single-entry changes, and serializing back out with everything
// untouched preserved byte for byte.
package entry

import (
	"strings"
)

// Kind identifies the syntax of a recognized line.
type Kind string

const (
	// KindAlias recognizes "alias NAME=VALUE" lines.
	KindAlias Kind = "alias"

	// KindExport recognizes "export NAME=VALUE" lines.
	KindExport Kind = "export"

	// KindSudoers recognizes any non-empty, non-comment line as a
	// free-form rule. Rules have no key; they match by exact content.
	KindSudoers Kind = "sudoers"
)

// Entry is a single recognized configuration line.
type Entry struct {
	Kind  Kind
	Key   string // empty for sudoers rules
	Value string
	Raw   string // exact serialized form, without line terminator
}

// Line is one physical line of the file: either a recognized Entry or
// opaque text (comments, blank lines, unrelated content).
type Line struct {
	Entry *Entry // nil for opaque lines
	Raw   string
}

// File is an ordered sequence of lines parsed for one Kind.
// Mutating operations return a new File; the receiver is never modified,
// so callers can preview a change before committing it.
type File struct {
	Kind            Kind
	Lines           []Line
	trailingNewline bool
}

// Parse splits text into lines and recognizes those matching the kind's
// syntax. It never fails: anything unrecognized becomes an opaque line
// that serializes back unchanged.
func Parse(kind Kind, text string) File {
	f := File{Kind: kind, trailingNewline: true}
	if text == "" {
		return f
	}

	f.trailingNewline = strings.HasSuffix(text, "\n")
	raw := strings.TrimSuffix(text, "\n")

	for _, line := range strings.Split(raw, "\n") {
		if e := recognize(kind, line); e != nil {
			f.Lines = append(f.Lines, Line{Entry: e, Raw: line})
		} else {
			f.Lines = append(f.Lines, Line{Raw: line})
		}
	}
	return f
}

// recognize returns the Entry for a line matching the kind's syntax, or nil.
func recognize(kind Kind, line string) *Entry {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}

	switch kind {
	case KindAlias:
		return recognizeAssignment(KindAlias, "alias ", trimmed, line)
	case KindExport:
		return recognizeAssignment(KindExport, "export ", trimmed, line)
	case KindSudoers:
		return &Entry{Kind: KindSudoers, Value: trimmed, Raw: line}
	default:
		return nil
	}
}

// recognizeAssignment parses "<prefix>NAME=VALUE" statements.
func recognizeAssignment(kind Kind, prefix, trimmed, raw string) *Entry {
	if !strings.HasPrefix(trimmed, prefix) {
		return nil
	}
	rest := strings.TrimPrefix(trimmed, prefix)
	key, val, found := strings.Cut(rest, "=")
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return nil
	}
	return &Entry{
		Kind:  kind,
		Key:   key,
		Value: unquote(val),
		Raw:   raw,
	}
}

// Upsert replaces the value of the entry with the given key, preserving
// its position, or appends a new entry when the key is absent. The key
// and value are validated before anything else happens.
func (f File) Upsert(key, value string) (File, error) {
	if err := ValidateKey(f.Kind, key); err != nil {
		return File{}, err
	}
	if err := ValidateValue(value); err != nil {
		return File{}, err
	}

	e := &Entry{Kind: f.Kind, Key: key, Value: value}
	e.Raw = Format(f.Kind, key, value)

	out := f.clone()
	for i, line := range out.Lines {
		if line.Entry != nil && line.Entry.Key == key {
			out.Lines[i] = Line{Entry: e, Raw: e.Raw}
			return out, nil
		}
	}
	out.Lines = append(out.Lines, Line{Entry: e, Raw: e.Raw})
	return out, nil
}

// UpsertRule adds a free-form rule line matched by exact content.
// Adding a rule that is already present is a no-op, keeping the
// operation idempotent.
func (f File) UpsertRule(rule string) (File, error) {
	if err := ValidateRule(rule); err != nil {
		return File{}, err
	}

	rule = strings.TrimSpace(rule)
	for _, line := range f.Lines {
		if line.Entry != nil && line.Entry.Value == rule {
			return f.clone(), nil
		}
	}

	out := f.clone()
	e := &Entry{Kind: f.Kind, Value: rule, Raw: rule}
	out.Lines = append(out.Lines, Line{Entry: e, Raw: rule})
	return out, nil
}

// Remove deletes all entries with the given key and reports how many
// lines were removed. Zero means "not found"; callers surface that as a
// user-visible no-op, not an error.
func (f File) Remove(key string) (File, int) {
	return f.removeMatching(func(e *Entry) bool { return e.Key == key })
}

// RemoveRule deletes all rule lines whose content matches rule exactly.
func (f File) RemoveRule(rule string) (File, int) {
	rule = strings.TrimSpace(rule)
	return f.removeMatching(func(e *Entry) bool { return e.Value == rule })
}

func (f File) removeMatching(match func(*Entry) bool) (File, int) {
	out := File{Kind: f.Kind, trailingNewline: f.trailingNewline}
	removed := 0
	for _, line := range f.Lines {
		if line.Entry != nil && match(line.Entry) {
			removed++
			continue
		}
		out.Lines = append(out.Lines, line)
	}
	return out, removed
}

// List returns the recognized entries in file order.
func (f File) List() []Entry {
	var entries []Entry
	for _, line := range f.Lines {
		if line.Entry != nil {
			entries = append(entries, *line.Entry)
		}
	}
	return entries
}

// Serialize reassembles the file text. Lines are joined by "\n" (rc and
// sudoers files are Unix artifacts), and the trailing terminator follows
// the original: present if the original ended with one or was empty.
func (f File) Serialize() string {
	if len(f.Lines) == 0 {
		return ""
	}

	raws := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		raws[i] = line.Raw
	}

	text := strings.Join(raws, "\n")
	if f.trailingNewline {
		text += "\n"
	}
	return text
}

func (f File) clone() File {
	out := File{Kind: f.Kind, trailingNewline: f.trailingNewline}
	out.Lines = append(out.Lines, f.Lines...)
	return out
}
