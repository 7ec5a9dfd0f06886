// Package format maps field values to and from safely quoted CSV tokens.
//
// Quoting follows the common CSV convention: a value containing a comma,
// double quote, carriage return, or newline is wrapped in double quotes with
// internal quotes doubled; anything else is emitted as-is. Unescape(Escape(x))
// returns x for every string x.
package format

import (
	"bufio"
	"io"
	"strings"
)

const needsQuoting = ",\"\n\r"

// Escape returns s as a token safe to embed in a comma-delimited row.
func Escape(s string) string {
	if !strings.ContainsAny(s, needsQuoting) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Unescape inverts Escape on a single stored token.
func Unescape(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
}

// JoinRow escapes each field and joins them into one row, without the
// trailing newline.
func JoinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, ",")
}

// ReadRow reads one logical row from r and returns its unescaped fields.
// Commas and line breaks inside quoted fields do not split or terminate the
// row. Returns io.EOF once the input is exhausted.
func ReadRow(r *bufio.Reader) ([]string, error) {
	var fields []string
	var field strings.Builder
	inQuotes := false
	read := false

	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			if !read {
				return nil, io.EOF
			}
			// Final row without a trailing newline.
			return append(fields, field.String()), nil
		}
		if err != nil {
			return nil, err
		}
		read = true

		if inQuotes {
			if ch != '"' {
				field.WriteRune(ch)
				continue
			}
			next, _, err := r.ReadRune()
			if err == io.EOF {
				inQuotes = false
				continue
			}
			if err != nil {
				return nil, err
			}
			if next == '"' {
				// Doubled quote inside a quoted field.
				field.WriteRune('"')
				continue
			}
			inQuotes = false
			if err := r.UnreadRune(); err != nil {
				return nil, err
			}
			continue
		}

		switch ch {
		case '"':
			if field.Len() == 0 {
				inQuotes = true
			} else {
				// Stray quote mid-field, keep it verbatim.
				field.WriteRune('"')
			}
		case ',':
			fields = append(fields, field.String())
			field.Reset()
		case '\n':
			return append(fields, field.String()), nil
		case '\r':
			next, _, err := r.ReadRune()
			if err == io.EOF {
				return append(fields, field.String()), nil
			}
			if err != nil {
				return nil, err
			}
			if next == '\n' {
				return append(fields, field.String()), nil
			}
			if err := r.UnreadRune(); err != nil {
				return nil, err
			}
			field.WriteRune('\r')
		default:
			field.WriteRune(ch)
		}
	}
}

// SplitRow splits one stored row into its unescaped field sequence.
// Returns io.EOF for an empty row.
func SplitRow(row string) ([]string, error) {
	return ReadRow(bufio.NewReader(strings.NewReader(row)))
}
