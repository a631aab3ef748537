package main

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nainya/photoquery/internal/metrics"
	"github.com/nainya/photoquery/pkg/debounce"
	"github.com/nainya/photoquery/pkg/findbar"
	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "type queries line by line, as into the find bar",
	Long: `Each input line is typed into a find bar one character at a time.
The query runs once typing pauses, so only the finished line is evaluated.
Type :clear to press Escape.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		return runRepl(cmd.Context(), e)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(ctx context.Context, e *env) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := debounce.NewEventLoop(0)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	sink := findbar.FilterSinkFunc(func(root *term.AndTerm) {
		e.coll.ApplyFilter(root)
		printMatches(color.Output, e, root, e.coll.Photos())
	})
	bar := findbar.New(e.builder, sink, loop,
		findbar.WithDelay(e.cfg.Debounce),
		findbar.WithObserver(m),
		findbar.WithLogger(e.log.Component("findbar")),
		findbar.OnReject(func(res query.Result) {
			// Incomplete input is expected while typing.
			if errors.Is(res.Err, query.ErrNoMatch) {
				return
			}
			printRejected(os.Stderr, res)
		}),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer cancel()

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if err := loop.Post(func() { typeLine(bar, line) }); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		// Run whatever is still waiting for the pause.
		return loop.Do(bar.Flush)
	})

	err := g.Wait()
	e.log.Debug("Find bar closed").
		Int("builds", bar.Builds()).
		Send()
	return err
}

// typeLine replaces the query with line, one keystroke at a time.
func typeLine(bar *findbar.Bar, line string) {
	bar.KeyPress(findbar.KeyEscape)
	if line == ":clear" {
		return
	}
	for _, r := range line {
		bar.Type(string(r))
	}
}
