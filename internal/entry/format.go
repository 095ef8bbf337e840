package entry

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/basm/internal/errors"
)

// Key syntax. Export names are POSIX shell identifiers. Alias names are
// looser (". .. g" style aliases are common) but must stay safely on one
// statement line.
var (
	exportKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	aliasKeyRe  = regexp.MustCompile(`^[A-Za-z0-9_.][A-Za-z0-9_.-]*$`)
)

// exportBareRe matches export values that need no quoting.
var exportBareRe = regexp.MustCompile(`^[A-Za-z0-9_./:=+,@%-]+$`)

// ValidateKey rejects keys that cannot be written as part of a single
// statement line. The error wraps errors.ErrInvalidKey.
func ValidateKey(kind Kind, key string) error {
	switch kind {
	case KindAlias:
		if !aliasKeyRe.MatchString(key) {
			return errors.Wrapf(errors.ErrInvalidKey, "alias name %q", key)
		}
	case KindExport:
		if !exportKeyRe.MatchString(key) {
			return errors.Wrapf(errors.ErrInvalidKey, "export name %q", key)
		}
	default:
		return errors.Wrapf(errors.ErrInvalidKey, "kind %s entries have no key", kind)
	}
	return nil
}

// ValidateValue rejects values that would break line-based parsing.
func ValidateValue(value string) error {
	if strings.ContainsAny(value, "\n\r\x00") {
		return errors.Wrap(errors.ErrInvalidValue, "value must be a single line")
	}
	return nil
}

// ValidateRule rejects sudoers rule text that cannot be stored as one
// rule line.
func ValidateRule(rule string) error {
	if strings.ContainsAny(rule, "\n\r\x00") {
		return errors.Wrap(errors.ErrInvalidValue, "rule must be a single line")
	}
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return errors.Wrap(errors.ErrInvalidValue, "rule must not be empty")
	}
	if strings.HasPrefix(trimmed, "#") {
		return errors.Wrap(errors.ErrInvalidValue, "rule must not be a comment")
	}
	return nil
}

// Format renders the canonical line for a key/value of the given kind.
//
// Quoting convention: alias values are always single-quoted with embedded
// single quotes escaped as '\''; export values are written bare when they
// consist solely of safe characters, otherwise double-quoted with \, ",
// $, and ` escaped.
func Format(kind Kind, key, value string) string {
	switch kind {
	case KindAlias:
		return "alias " + key + "=" + quoteSingle(value)
	case KindExport:
		return "export " + key + "=" + quoteExport(value)
	default:
		return value
	}
}

func quoteSingle(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteExport(s string) string {
	if s != "" && exportBareRe.MatchString(s) {
		return s
	}
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`$`, `\$`,
		"`", "\\`",
	)
	return `"` + r.Replace(s) + `"`
}

// unquote undoes the shell quoting of a parsed right-hand side. It
// accepts single-quoted, double-quoted, and bare values, so lines written
// by hand and lines written by Format both parse to the same value.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, `'\''`, "'")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		r := strings.NewReplacer(
			`\\`, `\`,
			`\"`, `"`,
			`\$`, `$`,
			"\\`", "`",
		)
		return r.Replace(inner)
	}
	return s
}
