package domain

// Category names one of the per-kind stores. Its value is both the
// subdirectory name and the base of the CSV file name.
type Category string

const (
	Questions Category = "questions"
	Answers   Category = "answers"
	Thoughts  Category = "thoughts"
)

// FileName returns the CSV file name within the category directory.
func (c Category) FileName() string { return string(c) + ".csv" }

// Columns returns the header names in storage order.
func (c Category) Columns() []string {
	if c == Answers {
		return []string{"uuid", "question_uuid", "timestamp", "username", "content"}
	}
	return []string{"uuid", "timestamp", "username", "content"}
}
