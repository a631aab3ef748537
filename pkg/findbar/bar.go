// ABOUTME: Find bar controller for the live photo query
// ABOUTME: Edits feed paren assist and the debouncer, which rebuilds the filter

package findbar

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nainya/photoquery/pkg/debounce"
	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

// FilterSink consumes applied filters. A nil root means the query is empty
// and every item should be shown.
type FilterSink interface {
	ApplyFilter(root *term.AndTerm)
}

// FilterSinkFunc adapts a function to FilterSink.
type FilterSinkFunc func(root *term.AndTerm)

func (f FilterSinkFunc) ApplyFilter(root *term.AndTerm) { f(root) }

// Observer receives find bar activity, typically for metrics.
type Observer interface {
	ObserveEdit(kind string)
	ObserveRearm()
	ObserveBuild(outcome string, d time.Duration)
	ObserveFilterApplied()
}

// Key is a key press the bar handles itself.
type Key int

const (
	KeyEscape Key = iota + 1
	KeyTab
)

// Bar owns the query text, keeps parentheses closed while typing and
// rebuilds the filter once typing pauses.
//
// A Bar is not safe for concurrent use. Edits, key presses and the debounce
// timer all run on the goroutine that owns the loop given to New.
type Bar struct {
	entry Entry
	open  int
	close int

	builder  *query.Builder
	sched    *debounce.Scheduler
	sink     FilterSink
	observer Observer
	onReject func(query.Result)
	log      zerolog.Logger

	root *term.AndTerm
	last query.Result
}

type options struct {
	delay    time.Duration
	observer Observer
	onReject func(query.Result)
	log      zerolog.Logger
}

// Option configures a Bar.
type Option func(*options)

// WithDelay sets the debounce interval.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithObserver reports activity to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// OnReject registers fn to be called with every rejected build.
func OnReject(fn func(query.Result)) Option {
	return func(o *options) { o.onReject = fn }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates an empty bar. Filters built by builder go to sink; timers are
// scheduled on loop.
func New(builder *query.Builder, sink FilterSink, loop debounce.Loop, opts ...Option) *Bar {
	o := options{delay: debounce.DefaultDelay, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Bar{
		builder:  builder,
		sink:     sink,
		observer: o.observer,
		onReject: o.onReject,
		log:      o.log,
	}
	b.sched = debounce.New(loop, b.update,
		debounce.WithDelay(o.delay),
		debounce.OnRearm(func() {
			if b.observer != nil {
				b.observer.ObserveRearm()
			}
		}),
	)
	return b
}

// Text returns the current query text.
func (b *Bar) Text() string { return b.entry.Text() }

// Len returns the length of the query text in runes.
func (b *Bar) Len() int { return b.entry.Len() }

// Cursor returns the cursor position in runes.
func (b *Bar) Cursor() int { return b.entry.Cursor() }

// SetCursor moves the cursor without editing.
func (b *Bar) SetCursor(pos int) { b.entry.SetCursor(pos) }

// Parens returns the running counts of open and close parentheses.
func (b *Bar) Parens() (open, close int) { return b.open, b.close }

// RootTerm returns the last applied filter.
func (b *Bar) RootTerm() *term.AndTerm { return b.root }

// LastResult returns the outcome of the most recent build.
func (b *Bar) LastResult() query.Result { return b.last }

// Diagnostic returns the message of the most recent rejected build, if any.
func (b *Bar) Diagnostic() string { return b.last.Diagnostic }

// State returns the state of the debouncer.
func (b *Bar) State() debounce.State { return b.sched.State() }

// Builds returns how many times the filter has been rebuilt.
func (b *Bar) Builds() int { return b.sched.Runs() }

// Type inserts text at the cursor as if typed.
func (b *Bar) Type(text string) {
	b.Insert(b.entry.Cursor(), text)
}

// Insert handles a user insertion of text at pos.
//
// Opening parens in the inserted text get their closing parens right after
// it, with the cursor left in between. Closing parens typed in front of
// parens that are already there are typed over instead of doubled. The
// programmatic edits made here are not edit events.
func (b *Bar) Insert(pos int, text string) {
	if text == "" {
		return
	}
	end := b.entry.insert(pos, text)

	opened := strings.Count(text, "(")
	closed := strings.Count(text, ")")
	b.open += opened
	b.close += closed

	for surplus := closed - opened; surplus > 0 && b.close > b.open; surplus-- {
		if r, ok := b.entry.runeAt(end); !ok || r != ')' {
			break
		}
		b.entry.delete(end, end+1)
		b.close--
	}

	if missing := opened - closed; missing > 0 {
		b.entry.insert(end, strings.Repeat(")", missing))
		b.close += missing
	}
	b.entry.SetCursor(end)

	b.edited("insert")
}

// Delete handles a user deletion of the runes in [start, end).
func (b *Bar) Delete(start, end int) {
	removed := b.entry.delete(start, end)
	if removed == "" {
		return
	}
	b.open -= strings.Count(removed, "(")
	b.close -= strings.Count(removed, ")")

	b.edited("delete")
}

// Backspace deletes the rune before the cursor.
func (b *Bar) Backspace() {
	if c := b.entry.Cursor(); c > 0 {
		b.Delete(c-1, c)
	}
}

// SetText replaces the whole query.
func (b *Bar) SetText(text string) {
	b.Delete(0, b.entry.Len())
	b.Insert(0, text)
}

// Clear empties the query, which clears the filter once the debouncer runs.
func (b *Bar) Clear() {
	b.Delete(0, b.entry.Len())
}

// KeyPress handles keys with special meaning and reports whether it did.
//
// Escape clears the query. Tab jumps just past the next opening paren, so a
// user can move into the next group; at the end of the text it is left to the
// host.
func (b *Bar) KeyPress(k Key) bool {
	switch k {
	case KeyEscape:
		b.Clear()
		return true
	case KeyTab:
		pos := b.entry.Cursor()
		if pos == b.entry.Len() {
			return false
		}
		for {
			r, ok := b.entry.runeAt(pos)
			if !ok || r == '(' {
				break
			}
			pos++
		}
		b.entry.SetCursor(pos + 1)
		return true
	}
	return false
}

// Flush rebuilds now if a rebuild is pending.
func (b *Bar) Flush() {
	b.sched.Flush()
}

func (b *Bar) edited(kind string) {
	if b.observer != nil {
		b.observer.ObserveEdit(kind)
	}
	b.sched.Notify()
}

func (b *Bar) update() {
	text := b.entry.Text()
	start := time.Now()
	res := b.builder.Build(text)
	outcome := query.Outcome(res)
	if b.observer != nil {
		b.observer.ObserveBuild(outcome, time.Since(start))
	}
	b.last = res

	if res.Rejected() {
		b.log.Debug().
			Str("text", text).
			Str("outcome", outcome).
			Err(res.Err).
			Msg("Keeping previous filter")
		if b.onReject != nil {
			b.onReject(res)
		}
		return
	}

	b.root = res.Root
	b.log.Debug().
		Str("text", text).
		Str("filter", term.Format(res.Root, b.builder.Operators().Spelling())).
		Msg("Applying filter")
	b.sink.ApplyFilter(res.Root)
	if b.observer != nil {
		b.observer.ObserveFilterApplied()
	}
}
