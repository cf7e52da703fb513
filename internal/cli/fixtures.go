package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/internal/fixtures"
)

type fixtureOptions struct {
	today  string
	person int64
}

// NewFixturesCommand creates the fixtures command group. Its subcommands read
// the local fixture store and never touch the network.
func NewFixturesCommand(opts *RootOptions) *cobra.Command {
	fo := &fixtureOptions{}

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Query the local training fixture data",
	}

	cmd.PersistentFlags().StringVar(&fo.today, "today", "", "pin today's date (YYYY-MM-DD); defaults to FIXTURE_TODAY or the wall clock")
	cmd.PersistentFlags().Int64Var(&fo.person, "person", 4, "person id")

	cmd.AddCommand(&cobra.Command{
		Use:           "scores",
		Short:         "Weighted scores of a person",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := fo.store(opts)
			if err != nil {
				return err
			}
			rows := store.ScoresByPersonID(fo.person)
			return opts.formatter(cmd).Success(rows, func(w io.Writer) {
				printScoreRows(w, rows)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "types",
		Short:         "Average score per course class of a person",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := fo.store(opts)
			if err != nil {
				return err
			}
			scores := store.CourseTypeScores(fo.person)
			return opts.formatter(cmd).Success(scores, func(w io.Writer) {
				printCourseTypeScores(w, scores)
			})
		},
	})

	var teacher bool
	today := &cobra.Command{
		Use:           "today",
		Short:         "Classes scheduled today",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := fo.store(opts)
			if err != nil {
				return err
			}
			courses := store.TodayCoursesForEmployee(fo.person)
			if teacher {
				courses = store.TodayCoursesForTeacher(fo.person)
			}
			return opts.formatter(cmd).Success(courses, func(w io.Writer) {
				printScheduled(w, courses)
			})
		},
	}
	today.Flags().BoolVar(&teacher, "teacher", false, "list the classes --person teaches")
	cmd.AddCommand(today)

	return cmd
}

func (fo *fixtureOptions) store(opts *RootOptions) (*fixtures.Store, error) {
	date := fo.today
	if date == "" {
		cfg, err := opts.config()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
		}
		date = cfg.Fixtures.Today
	}
	if date == "" {
		return fixtures.New(), nil
	}

	clock, err := fixtures.PinnedClock(date)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid --today", err)
	}
	return fixtures.New(fixtures.WithClock(clock)), nil
}
