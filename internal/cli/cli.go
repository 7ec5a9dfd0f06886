// Package cli builds the three recording commands. Each verb is its own
// binary; the constructors here keep them independently testable.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crsmith/qa-thoughts/internal/config"
	"github.com/crsmith/qa-thoughts/internal/domain"
	"github.com/crsmith/qa-thoughts/internal/store"
)

// runEnv is everything a single invocation needs: where to write, who is
// writing, and where diagnostics go. Built once per command run.
type runEnv struct {
	store    *store.Store
	username string
	log      *slog.Logger
}

func setup(dirOverride string) (*runEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dir := cfg.StorageDir
	if dirOverride != "" {
		dir = dirOverride
	}

	return &runEnv{
		store:    store.New(dir),
		username: resolveUsername(cfg),
		log:      newLogger(cfg.LogLevel),
	}, nil
}

// NewQuestionCmd builds the `question` command: record one question and
// print its UUID.
func NewQuestionCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:          "question [content]",
		Short:        "Record a question",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(dir)
			if err != nil {
				return err
			}

			q, err := domain.NewQuestion(strings.Join(args, " "), env.username)
			if err != nil {
				return err
			}
			if err := env.store.Append(q); err != nil {
				env.log.Error("question append failed", "error", err)
				return err
			}

			env.log.Info("question recorded", "uuid", q.ID, "username", q.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "Question recorded with UUID: %s\n", q.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "storage directory (default from config)")
	return cmd
}

// NewAnswerCmd builds the `answer` command. -q/--question optionally links
// the answer to a question UUID; the link is syntax-checked only, never
// looked up.
func NewAnswerCmd() *cobra.Command {
	var (
		dir         string
		questionRef string
	)

	cmd := &cobra.Command{
		Use:          "answer [content]",
		Short:        "Record an answer, optionally linked to a question",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(dir)
			if err != nil {
				return err
			}

			a, err := domain.NewAnswer(strings.Join(args, " "), env.username, questionRef)
			if err != nil {
				return err
			}
			if err := env.store.Append(a); err != nil {
				env.log.Error("answer append failed", "error", err)
				return err
			}

			env.log.Info("answer recorded", "uuid", a.ID, "question_uuid", questionRef)
			fmt.Fprintf(cmd.OutOrStdout(), "Answer recorded with UUID: %s\n", a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "storage directory (default from config)")
	cmd.Flags().StringVarP(&questionRef, "question", "q", "", "UUID of the question being answered")
	return cmd
}

// NewThoughtCmd builds the `thought` command: record one thought and print
// its UUID.
func NewThoughtCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:          "thought [content]",
		Short:        "Record a thought",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(dir)
			if err != nil {
				return err
			}

			th, err := domain.NewThought(strings.Join(args, " "), env.username)
			if err != nil {
				return err
			}
			if err := env.store.Append(th); err != nil {
				env.log.Error("thought append failed", "error", err)
				return err
			}

			env.log.Info("thought recorded", "uuid", th.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Thought recorded with UUID: %s\n", th.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "storage directory (default from config)")
	return cmd
}
