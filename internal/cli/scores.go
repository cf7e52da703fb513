package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/api/training"
	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/fixtures"
)

// NewScoresCommand creates the scores subcommand.
func NewScoresCommand(opts *RootOptions) *cobra.Command {
	var filter training.ScoreFilter

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "List the logged-in employee's course scores",
		Long: `List the logged-in employee's course scores from the training portal.

A rejected or expired session clears the stored login and reports the redirect to the login page.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScores(cmd.Context(), opts, filter, cmd)
		},
	}

	cmd.Flags().StringVar(&filter.CourseClass, "course-class", "", "only scores of this course class")
	cmd.Flags().Int64Var(&filter.PlanID, "plan", 0, "only scores of this plan")

	return cmd
}

func runScores(ctx context.Context, opts *RootOptions, filter training.ScoreFilter, cmd *cobra.Command) error {
	if opts.Deployment != config.DeploymentTraining {
		return NewExitError(ExitCommandError, "scores are only available on the training deployment")
	}

	a, err := opts.openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	f := opts.formatter(cmd)
	if !a.Session.IsLoggedIn() {
		return notLoggedIn(f, a)
	}

	env, err := a.Training.Employee.Scores(contextOrBackground(ctx), filter)
	if err != nil {
		return requestFailed(f, a, err)
	}
	rows, err := apiclient.Decode[[]fixtures.ScoreRow](env)
	if err != nil {
		return requestFailed(f, a, err)
	}

	return f.Success(rows, func(w io.Writer) {
		printScoreRows(w, rows)
	})
}

func printScoreRows(w io.Writer, rows []fixtures.ScoreRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No scores")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tCOURSE\tCLASS\tSELF\tTEACHER\tSCORE")
	for _, r := range rows {
		date, name, class := "-", "-", "-"
		if r.Item != nil {
			date = r.Item.ClassDate
		}
		if r.Course != nil {
			name, class = r.Course.CourseName, r.Course.CourseClass
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\t%.2f\n",
			date, name, class, r.SelfScore, r.TeacherScore, r.WeightedScore)
	}
	tw.Flush()
}

func printCourseTypeScores(w io.Writer, scores []fixtures.CourseTypeScore) {
	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tAVERAGE")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%.2f\n", s.CourseClass, s.AvgScore)
	}
	tw.Flush()
}

func printScheduled(w io.Writer, courses []fixtures.ScheduledCourse) {
	if len(courses) == 0 {
		fmt.Fprintln(w, "No classes today")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tCOURSE\tLOCATION\tPLAN")
	for _, c := range courses {
		name, plan := "-", "-"
		if c.Course != nil {
			name = c.Course.CourseName
		}
		if c.Plan != nil {
			plan = c.Plan.PlanName
		}
		fmt.Fprintf(tw, "%s-%s\t%s\t%s\t%s\n", c.ClassBeginTime, c.ClassEndTime, name, c.Location, plan)
	}
	tw.Flush()
}

// printFields prints a decoded JSON object as sorted key: value lines
func printFields(w io.Writer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %v\n", k, m[k])
	}
}
