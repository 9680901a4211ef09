package mmd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTruncatedInput means the buffer ended inside a section.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrBadMagic means the header does not start with "Pmd".
	ErrBadMagic = errors.New("bad magic")
	// ErrMalformedTriangleList means an index list length is not a multiple of 3.
	ErrMalformedTriangleList = errors.New("malformed triangle list")
	// ErrIndexOutOfRange means a triangle refers to a vertex that does not exist.
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// ErrPartitionOverrun means materials claim more entries than the index table holds.
	ErrPartitionOverrun = errors.New("material partition overrun")
	// ErrPartitionUnderrun means index entries remain after every material has been assigned.
	ErrPartitionUnderrun = errors.New("material partition underrun")
)

// ParseError is a structural decoding failure.
type ParseError struct {
	Section string
	Offset  int // byte offset of the read that failed
	Need    int // bytes requested by that read
	Err     error
}

func (e *ParseError) Error() string {
	if e.Need > 0 {
		return fmt.Sprintf("pmd: %s: %v at offset %d (need %d bytes)", e.Section, e.Err, e.Offset, e.Need)
	}
	return fmt.Sprintf("pmd: %s: %v at offset %d", e.Section, e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Issue is a semantic finding of the mesh assembler.
// In strict mode the first one is returned as the error.
type Issue struct {
	Err      error
	Material int // -1 if not tied to a material
	Offset   int // position in the raw index table
	Count    int // entries or triangles affected, depending on Err
}

func (i *Issue) Error() string {
	if i.Err == ErrBadMagic {
		return "pmd: header: " + i.Err.Error()
	}
	unit := "entries"
	if i.Err == ErrIndexOutOfRange {
		unit = "triangles"
	}
	if i.Material < 0 {
		return fmt.Sprintf("pmd: %v at index %d (%d %s)", i.Err, i.Offset, i.Count, unit)
	}
	return fmt.Sprintf("pmd: material %d: %v at index %d (%d %s)", i.Material, i.Err, i.Offset, i.Count, unit)
}

func (i *Issue) Unwrap() error {
	return i.Err
}

// IssueList collects the issues of a lenient parse.
type IssueList []*Issue

func (l IssueList) Error() string {
	msgs := make([]string, len(l))
	for i, issue := range l {
		msgs[i] = issue.Error()
	}
	return strings.Join(msgs, "; ")
}

// Is reports whether any issue matches target.
func (l IssueList) Is(target error) bool {
	for _, issue := range l {
		if errors.Is(issue, target) {
			return true
		}
	}
	return false
}

// Count returns the number of issues matching target.
func (l IssueList) Count(target error) int {
	n := 0
	for _, issue := range l {
		if errors.Is(issue, target) {
			n++
		}
	}
	return n
}
