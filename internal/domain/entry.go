package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the on-disk timestamp layout.
const TimeFormat = time.RFC3339

// Entry carries the fields common to every recorded item. All of them are
// generated at creation time and never change afterwards.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Username  string
	Content   string
}

// Question is a recorded question.
type Question struct {
	Entry
}

// Thought is a recorded free-form thought.
type Thought struct {
	Entry
}

// Answer is a recorded answer, optionally referencing the question it
// answers. The reference is a syntax-checked UUID only; it is never looked
// up against the questions store.
type Answer struct {
	Entry
	QuestionID *uuid.UUID
}

// Record is anything the store can persist as one row.
type Record interface {
	Category() Category
	Fields() []string
}

func newEntry(content, username string) (Entry, error) {
	if strings.TrimSpace(content) == "" {
		return Entry{}, ErrEmptyContent
	}
	return Entry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Username:  username,
		Content:   content,
	}, nil
}

// NewQuestion creates a question with a fresh ID and timestamp.
func NewQuestion(content, username string) (Question, error) {
	e, err := newEntry(content, username)
	if err != nil {
		return Question{}, err
	}
	return Question{Entry: e}, nil
}

// NewThought creates a thought with a fresh ID and timestamp.
func NewThought(content, username string) (Thought, error) {
	e, err := newEntry(content, username)
	if err != nil {
		return Thought{}, err
	}
	return Thought{Entry: e}, nil
}

// NewAnswer creates an answer. questionRef, when non-empty, must parse as a
// UUID; it is stored as given without checking that a matching question
// exists.
func NewAnswer(content, username, questionRef string) (Answer, error) {
	var qid *uuid.UUID
	if questionRef != "" {
		id, err := uuid.Parse(questionRef)
		if err != nil {
			return Answer{}, ErrInvalidQuestionUUID
		}
		qid = &id
	}
	e, err := newEntry(content, username)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Entry: e, QuestionID: qid}, nil
}

func (e Entry) fields() []string {
	return []string{
		e.ID.String(),
		e.Timestamp.Format(TimeFormat),
		e.Username,
		e.Content,
	}
}

func (q Question) Category() Category { return Questions }

// Fields returns the row values in the questions column order.
func (q Question) Fields() []string { return q.Entry.fields() }

func (t Thought) Category() Category { return Thoughts }

// Fields returns the row values in the thoughts column order.
func (t Thought) Fields() []string { return t.Entry.fields() }

func (a Answer) Category() Category { return Answers }

// Fields returns the row values in the answers column order. An absent
// question reference is stored as the empty string.
func (a Answer) Fields() []string {
	ref := ""
	if a.QuestionID != nil {
		ref = a.QuestionID.String()
	}
	f := a.Entry.fields()
	return []string{f[0], ref, f[1], f[2], f[3]}
}

func decodeEntry(id, ts, username, content string) (Entry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad uuid %q", ErrCorruptRow, id)
	}
	t, err := time.Parse(TimeFormat, ts)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: bad timestamp %q", ErrCorruptRow, ts)
	}
	return Entry{ID: uid, Timestamp: t, Username: username, Content: content}, nil
}

// DecodeQuestion rebuilds a question from its stored row values.
func DecodeQuestion(fields []string) (Question, error) {
	if len(fields) != len(Questions.Columns()) {
		return Question{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrCorruptRow, len(Questions.Columns()), len(fields))
	}
	e, err := decodeEntry(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		return Question{}, err
	}
	return Question{Entry: e}, nil
}

// DecodeThought rebuilds a thought from its stored row values.
func DecodeThought(fields []string) (Thought, error) {
	if len(fields) != len(Thoughts.Columns()) {
		return Thought{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrCorruptRow, len(Thoughts.Columns()), len(fields))
	}
	e, err := decodeEntry(fields[0], fields[1], fields[2], fields[3])
	if err != nil {
		return Thought{}, err
	}
	return Thought{Entry: e}, nil
}

// DecodeAnswer rebuilds an answer from its stored row values.
func DecodeAnswer(fields []string) (Answer, error) {
	if len(fields) != len(Answers.Columns()) {
		return Answer{}, fmt.Errorf("%w: expected %d fields, got %d",
			ErrCorruptRow, len(Answers.Columns()), len(fields))
	}
	e, err := decodeEntry(fields[0], fields[2], fields[3], fields[4])
	if err != nil {
		return Answer{}, err
	}
	var qid *uuid.UUID
	if fields[1] != "" {
		id, err := uuid.Parse(fields[1])
		if err != nil {
			return Answer{}, fmt.Errorf("%w: bad question uuid %q", ErrCorruptRow, fields[1])
		}
		qid = &id
	}
	return Answer{Entry: e, QuestionID: qid}, nil
}
