// Package store persists entries as per-category CSV files under a base
// directory, one subdirectory and file per category. Rows are append-only;
// existing rows are never rewritten.
package store

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/crsmith/qa-thoughts/internal/domain"
	"github.com/crsmith/qa-thoughts/internal/format"
)

// Store handles filesystem operations for all categories. The base directory
// is explicit; callers decide where it comes from (config, flag, test dir).
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir. No filesystem access happens until
// the first write or read.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Dir returns the store's base directory.
func (s *Store) Dir() string { return s.baseDir }

func (s *Store) categoryPath(cat domain.Category) string {
	return filepath.Join(s.baseDir, string(cat), cat.FileName())
}

// Ensure creates the category directory and its CSV file with a header row,
// if they do not exist yet. Safe to call repeatedly: the header is written at
// most once, via O_EXCL, so a concurrent first write cannot duplicate it.
func (s *Store) Ensure(cat domain.Category) error {
	dir := filepath.Join(s.baseDir, string(cat))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s dir: %w", domain.ErrStorage, cat, err)
	}

	f, err := os.OpenFile(s.categoryPath(cat), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("%w: create %s file: %w", domain.ErrStorage, cat, err)
	}

	// Column names never need quoting.
	header := strings.Join(cat.Columns(), ",") + "\n"
	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s header: %w", domain.ErrStorage, cat, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: write %s header: %w", domain.ErrStorage, cat, err)
	}
	return nil
}

// Append serializes rec and appends exactly one row to its category file,
// creating directory, file, and header first if needed. The row is written
// with a single write on an O_APPEND descriptor, so concurrent appends from
// independent processes do not interleave mid-row.
func (s *Store) Append(rec domain.Record) error {
	cat := rec.Category()
	if err := s.Ensure(cat); err != nil {
		return err
	}

	f, err := os.OpenFile(s.categoryPath(cat), os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s for append: %w", domain.ErrStorage, cat, err)
	}

	row := format.JoinRow(rec.Fields()) + "\n"
	if _, err := f.Write([]byte(row)); err != nil {
		f.Close()
		return fmt.Errorf("%w: append to %s: %w", domain.ErrStorage, cat, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: append to %s: %w", domain.ErrStorage, cat, err)
	}
	return nil
}

type rawRow struct {
	line   int
	fields []string
}

// rows yields the raw field rows of a category file in order, skipping the
// header. A missing file yields nothing. Each range call reopens the file, so
// the sequence is restartable.
func (s *Store) rows(cat domain.Category) iter.Seq2[rawRow, error] {
	return func(yield func(rawRow, error) bool) {
		f, err := os.Open(s.categoryPath(cat))
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			yield(rawRow{}, fmt.Errorf("%w: open %s: %w", domain.ErrStorage, cat, err))
			return
		}
		defer f.Close()

		r := bufio.NewReader(f)
		for line := 1; ; line++ {
			fields, err := format.ReadRow(r)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(rawRow{}, fmt.Errorf("%w: read %s line %d: %w", domain.ErrStorage, cat, line, err))
				return
			}
			if line == 1 {
				continue
			}
			if !yield(rawRow{line: line, fields: fields}, nil) {
				return
			}
		}
	}
}

// entries decodes the rows of a category. Iteration stops after the first
// error; a corrupt row is reported with its line number and not repaired.
func entries[T domain.Record](s *Store, cat domain.Category, decode func([]string) (T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for row, err := range s.rows(cat) {
			if err != nil {
				yield(zero, err)
				return
			}
			rec, err := decode(row.fields)
			if err != nil {
				yield(zero, fmt.Errorf("%s line %d: %w", cat, row.line, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Questions iterates the stored questions in file order, oldest first.
func (s *Store) Questions() iter.Seq2[domain.Question, error] {
	return entries(s, domain.Questions, domain.DecodeQuestion)
}

// Answers iterates the stored answers in file order, oldest first.
func (s *Store) Answers() iter.Seq2[domain.Answer, error] {
	return entries(s, domain.Answers, domain.DecodeAnswer)
}

// Thoughts iterates the stored thoughts in file order, oldest first.
func (s *Store) Thoughts() iter.Seq2[domain.Thought, error] {
	return entries(s, domain.Thoughts, domain.DecodeThought)
}

func collect[T domain.Record](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for rec, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ReadQuestions returns all stored questions, oldest first.
func (s *Store) ReadQuestions() ([]domain.Question, error) {
	return collect(s.Questions())
}

// ReadAnswers returns all stored answers, oldest first.
func (s *Store) ReadAnswers() ([]domain.Answer, error) {
	return collect(s.Answers())
}

// ReadThoughts returns all stored thoughts, oldest first.
func (s *Store) ReadThoughts() ([]domain.Thought, error) {
	return collect(s.Thoughts())
}
