package rope

// Insert returns a Text with other inserted before offset index.
// An index past the end appends; a negative index prepends.
func (t Text) Insert(index int, other Text) Text {
	n := t.Len()
	index = min(max(index, 0), n)
	return t.Substr(0, index).Concat(other).Concat(t.Substr(index, n-index))
}

// Delete returns a Text with count characters removed starting at index.
// The deleted range is clamped to the text like Substr: removing past the
// end deletes up to the end, and an index past the end deletes nothing.
func (t Text) Delete(index, count int) Text {
	n := t.Len()
	index = min(max(index, 0), n)
	end := index + min(max(count, 0), n-index)
	return t.Substr(0, index).Concat(t.Substr(end, n-end))
}

// Replace returns a Text with count characters starting at index replaced
// by other. The range is clamped as in Delete.
func (t Text) Replace(index, count int, other Text) Text {
	index = min(max(index, 0), t.Len())
	return t.Delete(index, count).Insert(index, other)
}
