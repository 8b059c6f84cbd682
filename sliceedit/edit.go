// Package sliceedit wraps rsc.io/edit with buffered editing of byte
// slices: edits are queued against offsets in the original data and
// applied in a single allocation.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  edit.Buffer
	buf []byte
}

// NewBuffer returns a new buffer to accumulate changes to an initial data
// slice. The buffer keeps a reference to the data, so the caller must not
// modify it until the Buffer is done being used.
func NewBuffer(buf []byte) *Buffer {
	b := &Buffer{}
	b.buf = buf
	b.ed = *edit.NewBuffer(buf)
	return b
}

// NewBufferString is NewBuffer for string data.
func NewBufferString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// Replace queues the replacement of buf[start:end] with new. Offsets are
// into the original data; queued edits must not overlap.
func (b *Buffer) Replace(start, end int, new string) {
	b.ed.Replace(start, end, new)
}

// Delete queues the deletion of buf[start:end].
func (b *Buffer) Delete(start, end int) {
	b.ed.Delete(start, end)
}

// FindAll finds all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}

	if len(item) == 0 {
		return found
	}

	realOffset := 0

	for {
		i := bytes.Index(buf, []byte(item))
		if i == -1 {
			return found
		}
		found = append(found, i+realOffset)
		buf = buf[i+len(item):]
		realOffset = realOffset + i + len(item)
	}
}

// ReplaceAllString queues the replacement of every non-overlapping
// occurrence of old with new.
func (b *Buffer) ReplaceAllString(old string, new string) {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
}

// Bytes returns a new byte slice containing the original data with the
// queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns a string containing the original data with the queued
// edits applied.
func (b *Buffer) String() string {
	return string(b.ed.Bytes())
}
