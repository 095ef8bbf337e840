package entry

import (
	"testing"

	"github.com/thoreinstein/basm/internal/errors"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		text string
	}{
		{"empty file", KindAlias, ""},
		{"comments only", KindAlias, "# my rc file\n\n# end\n"},
		{"no trailing newline", KindExport, "export PATH=/usr/bin"},
		{"mixed content", KindAlias, "# header\nalias ll='ls -l'\nexport PATH=/usr/bin\n\nif true; then\n  echo hi\nfi\n"},
		{"sudoers", KindSudoers, "# sudoers\nDefaults env_reset\nroot ALL=(ALL) ALL\n"},
		{"blank lines preserved", KindExport, "\n\n\nexport A=b\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse(tt.kind, tt.text)
			if got := f.Serialize(); got != tt.text {
				t.Errorf("Serialize(Parse(text)) = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestParseRecognition(t *testing.T) {
	text := "# comment\nalias ll='ls -l'\nalias gs=\"git status\"\nexport PATH=/usr/bin\nalias broken\n"

	f := Parse(KindAlias, text)
	entries := f.List()
	if len(entries) != 2 {
		t.Fatalf("alias entries = %d, want 2", len(entries))
	}
	if entries[0].Key != "ll" || entries[0].Value != "ls -l" {
		t.Errorf("entry[0] = %+v", entries[0])
	}
	if entries[1].Key != "gs" || entries[1].Value != "git status" {
		t.Errorf("entry[1] = %+v", entries[1])
	}

	// The same text parsed for exports recognizes only the export line.
	f = Parse(KindExport, text)
	entries = f.List()
	if len(entries) != 1 || entries[0].Key != "PATH" || entries[0].Value != "/usr/bin" {
		t.Errorf("export entries = %+v", entries)
	}
}

func TestParseSudoersSkipsComments(t *testing.T) {
	f := Parse(KindSudoers, "# comment\n\nDefaults env_reset\nroot ALL=(ALL) ALL\n")
	entries := f.List()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Value != "Defaults env_reset" {
		t.Errorf("entry[0].Value = %q", entries[0].Value)
	}
}

func TestUpsertAppends(t *testing.T) {
	f := Parse(KindAlias, "export PATH=/usr/bin\n")

	out, err := f.Upsert("ll", "ls -l")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	want := "export PATH=/usr/bin\nalias ll='ls -l'\n"
	if got := out.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	// Input sequence is untouched.
	if got := f.Serialize(); got != "export PATH=/usr/bin\n" {
		t.Errorf("input mutated: %q", got)
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	f := Parse(KindAlias, "alias a='1'\nalias b='2'\nalias c='3'\n")

	out, err := f.Upsert("b", "22")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	want := "alias a='1'\nalias b='22'\nalias c='3'\n"
	if got := out.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	entries := out.List()
	if len(entries) != 3 {
		t.Errorf("entries = %d, want exactly 3 (no duplicate for b)", len(entries))
	}
}

func TestUpsertIdempotent(t *testing.T) {
	f := Parse(KindExport, "# rc\n")

	once, err := f.Upsert("EDITOR", "vim")
	if err != nil {
		t.Fatal(err)
	}
	twice, err := once.Upsert("EDITOR", "vim")
	if err != nil {
		t.Fatal(err)
	}

	if once.Serialize() != twice.Serialize() {
		t.Errorf("adding twice differs from adding once:\n%q\n%q", once.Serialize(), twice.Serialize())
	}
}

func TestUpsertValidation(t *testing.T) {
	f := Parse(KindAlias, "")

	tests := []struct {
		name     string
		kind     Kind
		key, val string
		sentinel error
	}{
		{"newline in value", KindAlias, "x", "evil\ninjected", errors.ErrInvalidValue},
		{"equals in alias name", KindAlias, "a=b", "x", errors.ErrInvalidKey},
		{"space in alias name", KindAlias, "a b", "x", errors.ErrInvalidKey},
		{"empty key", KindAlias, "", "x", errors.ErrInvalidKey},
		{"export name with dash", KindExport, "MY-VAR", "x", errors.ErrInvalidKey},
		{"export name starting with digit", KindExport, "1VAR", "x", errors.ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := f
			if tt.kind == KindExport {
				target = Parse(KindExport, "")
			}
			_, err := target.Upsert(tt.key, tt.val)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Upsert(%q, %q) error = %v, want %v", tt.key, tt.val, err, tt.sentinel)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	text := "alias a='1'\n# keep me\nalias b='2'\n"
	f := Parse(KindAlias, text)

	out, removed := f.Remove("a")
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	want := "# keep me\nalias b='2'\n"
	if got := out.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	text := "alias a='1'\n"
	f := Parse(KindAlias, text)

	out, removed := f.Remove("nope")
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if got := out.Serialize(); got != text {
		t.Errorf("Serialize() = %q, want input unchanged %q", got, text)
	}
}

func TestUpsertRule(t *testing.T) {
	f := Parse(KindSudoers, "Defaults env_reset\n")
	rule := "alice ALL=(ALL) NOPASSWD: /usr/bin/systemctl"

	out, err := f.UpsertRule(rule)
	if err != nil {
		t.Fatalf("UpsertRule() error = %v", err)
	}
	want := "Defaults env_reset\n" + rule + "\n"
	if got := out.Serialize(); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	// Adding the same rule again changes nothing.
	again, err := out.UpsertRule(rule)
	if err != nil {
		t.Fatal(err)
	}
	if again.Serialize() != out.Serialize() {
		t.Error("UpsertRule is not idempotent")
	}
}

func TestUpsertRuleValidation(t *testing.T) {
	f := Parse(KindSudoers, "")

	for _, rule := range []string{"", "   ", "a\nb", "# comment"} {
		if _, err := f.UpsertRule(rule); !errors.Is(err, errors.ErrInvalidValue) {
			t.Errorf("UpsertRule(%q) error = %v, want ErrInvalidValue", rule, err)
		}
	}
}

func TestRemoveRule(t *testing.T) {
	text := "Defaults env_reset\nalice ALL=(ALL) ALL\n# note\n"
	f := Parse(KindSudoers, text)

	out, removed := f.RemoveRule("alice ALL=(ALL) ALL")
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if got := out.Serialize(); got != "Defaults env_reset\n# note\n" {
		t.Errorf("Serialize() = %q", got)
	}

	// Absent rule removes nothing and preserves the text.
	out, removed = f.RemoveRule("bob ALL=(ALL) ALL")
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if got := out.Serialize(); got != text {
		t.Errorf("Serialize() = %q, want %q", got, text)
	}
}

func TestListPreservesOrder(t *testing.T) {
	f := Parse(KindExport, "export B=2\n# x\nexport A=1\n")
	entries := f.List()
	if len(entries) != 2 || entries[0].Key != "B" || entries[1].Key != "A" {
		t.Errorf("List() = %+v", entries)
	}
}
