// 19 Oct 2026

package annot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrew-torda/rnaannot/pkg/graph"
)

// ErrLookupMiss is wrapped by Need and Get when nothing provides a kind.
// Callers should skip the part of the work that needs it.
var ErrLookupMiss = errors.New("annotation not available")

// DependencyError is returned when a module is registered before the
// things it requires, or when a requirement can never be met.
type DependencyError struct {
	Module  Kind
	Missing []Kind
	Dup     bool // something already provides Module
}

func (e *DependencyError) Error() string {
	if e.Dup {
		return fmt.Sprintf("annotation %v registered twice", e.Module)
	}
	s := make([]string, len(e.Missing))
	for i, k := range e.Missing {
		s[i] = k.String()
	}
	return fmt.Sprintf("annotation %v needs %s, not available", e.Module, strings.Join(s, ", "))
}

// StructureInconsistency is a warning. A residue should belong to
// exactly one secondary structure element, but belongs to N.
type StructureInconsistency struct {
	Res graph.ResID
	N   int
}

func (e *StructureInconsistency) Error() string {
	return fmt.Sprintf("residue %v belongs to %d secondary structure elements", e.Res, e.N)
}

// GapTooLong is a warning from dot-bracket rendering. The gap after
// residue After is Len long, but we only fill gaps up to Max.
type GapTooLong struct {
	Chain string
	After graph.ResID
	Len   int
	Max   int
}

func (e *GapTooLong) Error() string {
	return fmt.Sprintf("chain %s: gap of %d after %v is longer than %d, not filling gaps",
		e.Chain, e.Len, e.After, e.Max)
}
