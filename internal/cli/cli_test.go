package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crsmith/qa-thoughts/internal/store"
)

var uuidLine = regexp.MustCompile(`recorded with UUID: ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\n$`)

// testEnv isolates HOME and the username so commands never touch the real
// user's store. Returns the storage dir to pass via --dir.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QA_THOUGHTS_USERNAME", "cli-tester")
	t.Setenv("QA_THOUGHTS_CONFIG", "")
	t.Setenv("QA_THOUGHTS_DIR", "")
	os.Unsetenv("QA_THOUGHTS_CONFIG")
	os.Unsetenv("QA_THOUGHTS_DIR")
	return filepath.Join(t.TempDir(), "store")
}

// run executes cmd with args and returns captured stdout, stderr, and err.
func run(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestQuestionCommand(t *testing.T) {
	dir := testEnv(t)

	out, _, err := run(NewQuestionCmd(), "--dir", dir, "What is the meaning of life?")
	require.NoError(t, err)

	m := uuidLine.FindStringSubmatch(out)
	require.NotNil(t, m, "output %q should end with a UUID line", out)
	assert.True(t, strings.HasPrefix(out, "Question recorded with UUID: "))

	questions, err := store.New(dir).ReadQuestions()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, m[1], questions[0].ID.String())
	assert.Equal(t, "What is the meaning of life?", questions[0].Content)
	assert.Equal(t, "cli-tester", questions[0].Username)
}

func TestQuestionContentRoundTrips(t *testing.T) {
	dir := testEnv(t)

	content := `tricky "content", with, commas`
	_, _, err := run(NewQuestionCmd(), "--dir", dir, content)
	require.NoError(t, err)

	questions, err := store.New(dir).ReadQuestions()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, content, questions[0].Content)
}

func TestQuestionJoinsArgs(t *testing.T) {
	dir := testEnv(t)

	_, _, err := run(NewQuestionCmd(), "--dir", dir, "what", "about", "this?")
	require.NoError(t, err)

	questions, err := store.New(dir).ReadQuestions()
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "what about this?", questions[0].Content)
}

func TestAnswerLinkedToQuestion(t *testing.T) {
	dir := testEnv(t)

	out, _, err := run(NewQuestionCmd(), "--dir", dir, "What is the meaning of life?")
	require.NoError(t, err)
	qid := uuidLine.FindStringSubmatch(out)[1]

	out, _, err = run(NewAnswerCmd(), "--dir", dir, "-q", qid, "42")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Answer recorded with UUID: "))

	answers, err := store.New(dir).ReadAnswers()
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].QuestionID)
	assert.Equal(t, qid, answers[0].QuestionID.String())
	assert.Equal(t, "42", answers[0].Content)
}

func TestAnswerUncheckedReference(t *testing.T) {
	dir := testEnv(t)

	// A valid UUID is stored even though no such question exists.
	ref := uuid.New().String()
	_, _, err := run(NewAnswerCmd(), "--dir", dir, "--question", ref, "orphan answer")
	require.NoError(t, err)

	answers, err := store.New(dir).ReadAnswers()
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].QuestionID)
	assert.Equal(t, ref, answers[0].QuestionID.String())
}

func TestAnswerInvalidUUIDWritesNothing(t *testing.T) {
	dir := testEnv(t)

	_, errOut, err := run(NewAnswerCmd(), "--dir", dir, "-q", "not-a-uuid", "42")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: Invalid question UUID format")

	// Zero writes: the answers store was never created.
	assert.NoFileExists(t, filepath.Join(dir, "answers", "answers.csv"))
}

func TestAnswerWithoutReference(t *testing.T) {
	dir := testEnv(t)

	_, _, err := run(NewAnswerCmd(), "--dir", dir, "just an answer")
	require.NoError(t, err)

	answers, err := store.New(dir).ReadAnswers()
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Nil(t, answers[0].QuestionID)
}

func TestThoughtCommand(t *testing.T) {
	dir := testEnv(t)

	out, _, err := run(NewThoughtCmd(), "--dir", dir, "Remember to buy milk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Thought recorded with UUID: "))

	thoughts, err := store.New(dir).ReadThoughts()
	require.NoError(t, err)
	require.Len(t, thoughts, 1)
	assert.Equal(t, "Remember to buy milk", thoughts[0].Content)

	// Other categories stay untouched.
	assert.NoFileExists(t, filepath.Join(dir, "questions", "questions.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "answers", "answers.csv"))
}

func TestBlankContentRejected(t *testing.T) {
	dir := testEnv(t)

	_, errOut, err := run(NewQuestionCmd(), "--dir", dir, "   ")
	require.Error(t, err)
	assert.Contains(t, errOut, "Error: content cannot be empty")
	assert.NoFileExists(t, filepath.Join(dir, "questions", "questions.csv"))
}

func TestUsernameFromConfigOverride(t *testing.T) {
	dir := testEnv(t)
	t.Setenv("QA_THOUGHTS_USERNAME", "someone-else")

	_, _, err := run(NewThoughtCmd(), "--dir", dir, "whose thought is this?")
	require.NoError(t, err)

	thoughts, err := store.New(dir).ReadThoughts()
	require.NoError(t, err)
	require.Len(t, thoughts, 1)
	assert.Equal(t, "someone-else", thoughts[0].Username)
}

func TestFirstRunCreatesHeaderAndRow(t *testing.T) {
	dir := testEnv(t)

	_, _, err := run(NewQuestionCmd(), "--dir", dir, "first ever question")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "questions", "questions.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "uuid,timestamp,username,content", lines[0])
}
