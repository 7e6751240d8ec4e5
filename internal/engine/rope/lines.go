package rope

// LinePos returns the offset at which the given zero-based line starts.
// Line 0 always starts at offset 0. Returns false if line >= Lines().
func (t Text) LinePos(line int) (int, bool) {
	if line == 0 {
		return 0, true
	}
	n := t.node()
	if line < 0 || line >= n.lines {
		return 0, false
	}
	return n.lineStart(line), true
}

// FromLine returns the text from the start of the given line to the end.
// Returns false under the same condition as LinePos.
func (t Text) FromLine(line int) (Text, bool) {
	start, ok := t.LinePos(line)
	if !ok {
		return Text{}, false
	}
	return t.Substr(start, t.Len()-start), true
}

// Line returns the content of the given line, including its trailing
// newline. Returns false under the same condition as LinePos. A line with
// no following newline extends to the end of the text.
func (t Text) Line(line int) (Text, bool) {
	start, ok := t.LinePos(line)
	if !ok {
		return Text{}, false
	}

	n := t.node()
	end := n.length
	if line+1 <= n.lines {
		end = n.lineStart(line + 1)
	}
	return t.Substr(start, end-start), true
}
