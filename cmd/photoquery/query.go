package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nainya/photoquery/pkg/catalog"
	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

var (
	headerColor = color.New(color.FgGreen, color.Bold)
	pathColor   = color.New(color.FgWhite)
	tagColor    = color.New(color.FgYellow)
	diagColor   = color.New(color.FgYellow, color.Bold)
	errColor    = color.New(color.FgRed, color.Bold)
)

var queryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "run one query and print the matching photos",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}

		res := e.builder.Build(strings.Join(args, " "))
		if res.Rejected() {
			printRejected(os.Stderr, res)
			return res.Err
		}
		printMatches(color.Output, e, res.Root, e.coll.Query(res.Root))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func printMatches(w io.Writer, e *env, root *term.AndTerm, photos []*catalog.Photo) {
	cond := term.Format(e.coll.Effective(root), e.builder.Operators().Spelling())
	if cond == "" {
		cond = "everything"
	}
	headerColor.Fprintf(w, "%d photos match %s\n", len(photos), cond)

	for _, p := range photos {
		pathColor.Fprint(w, "  ", p.Path)
		if len(p.Tags) > 0 {
			names := make([]string, len(p.Tags))
			for i, t := range p.Tags {
				names[i] = t.Name()
			}
			tagColor.Fprintf(w, "  [%s]", strings.Join(names, ", "))
		}
		fmt.Fprintln(w)
	}
}

func printRejected(w io.Writer, res query.Result) {
	if res.Diagnostic != "" {
		diagColor.Fprintln(w, res.Diagnostic)
		return
	}
	errColor.Fprintln(w, res.Err)
}
