package findbar

// Entry is a single-line text buffer with a cursor. Positions count runes,
// not bytes.
type Entry struct {
	text   []rune
	cursor int
}

// Text returns the buffer content.
func (e *Entry) Text() string { return string(e.text) }

// Len returns the buffer length in runes.
func (e *Entry) Len() int { return len(e.text) }

// Cursor returns the cursor position.
func (e *Entry) Cursor() int { return e.cursor }

// SetCursor moves the cursor, clamped to the buffer.
func (e *Entry) SetCursor(pos int) { e.cursor = e.clamp(pos) }

func (e *Entry) runeAt(pos int) (rune, bool) {
	if pos < 0 || pos >= len(e.text) {
		return 0, false
	}
	return e.text[pos], true
}

// insert puts s at pos and returns the position just after it.
func (e *Entry) insert(pos int, s string) int {
	pos = e.clamp(pos)
	ins := []rune(s)
	text := make([]rune, 0, len(e.text)+len(ins))
	text = append(text, e.text[:pos]...)
	text = append(text, ins...)
	text = append(text, e.text[pos:]...)
	e.text = text

	end := pos + len(ins)
	if e.cursor >= pos {
		e.cursor += len(ins)
	}
	return end
}

// delete removes [start, end) and returns the removed text.
func (e *Entry) delete(start, end int) string {
	start, end = e.clamp(start), e.clamp(end)
	if end < start {
		start, end = end, start
	}
	removed := string(e.text[start:end])
	e.text = append(e.text[:start:start], e.text[end:]...)

	switch {
	case e.cursor >= end:
		e.cursor -= end - start
	case e.cursor > start:
		e.cursor = start
	}
	return removed
}

func (e *Entry) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(e.text) {
		return len(e.text)
	}
	return pos
}
