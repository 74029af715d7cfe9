// 19 Oct 2026

// Package annot runs annotation modules over an interaction graph.
// Each module says what it provides and what it needs. A module is only
// accepted once everything it needs has been provided by modules that
// were accepted before it. Annotate() then calls the modules in that
// order. Modules find each other's results through Lookup(), Need() or
// Get().
// Everything is recomputed on each call to Annotate(). Nothing runs in
// parallel, so there is no locking.
package annot

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"strings"

	"github.com/andrew-torda/rnaannot/pkg/graph"
)

// Annotation is one module of the pipeline.
type Annotation interface {
	Provides() Kind
	Requires() []Kind
	Update(m *Model) error // recompute everything from the model's graph
	Output(w io.Writer)    // text rendering of the result
}

// Model owns the graph, the accepted modules and their warnings.
type Model struct {
	g        *graph.Graph
	log      *log.Logger
	annots   []Annotation
	provided map[Kind]Annotation
	warnings []error
}

// NewModel returns a model with no modules. A nil logger discards.
func NewModel(g *graph.Graph, lg *log.Logger) *Model {
	if lg == nil {
		lg = log.New(ioutil.Discard, "", 0)
	}
	return &Model{g: g, log: lg, provided: make(map[Kind]Annotation)}
}

// Graph returns the graph being annotated
func (m *Model) Graph() *graph.Graph { return m.g }

// Logger is shared by all modules
func (m *Model) Logger() *log.Logger { return m.log }

// missing returns the kinds in req which are not in have
func missing(req []Kind, have func(Kind) bool) []Kind {
	var ret []Kind
	for _, k := range req {
		if !have(k) {
			ret = append(ret, k)
		}
	}
	return ret
}

// Register appends a module if all its requirements are already there.
// Otherwise the module is not registered and we return a *DependencyError.
func (m *Model) Register(a Annotation) error {
	if _, ok := m.provided[a.Provides()]; ok {
		return &DependencyError{Module: a.Provides(), Dup: true}
	}
	have := func(k Kind) bool { _, ok := m.provided[k]; return ok }
	if miss := missing(a.Requires(), have); miss != nil {
		return &DependencyError{Module: a.Provides(), Missing: miss}
	}
	m.annots = append(m.annots, a)
	m.provided[a.Provides()] = a
	return nil
}

// Sort puts modules in an order where every module comes after what it
// needs. Among modules that are ready, the earlier one in as goes first.
// If some requirement can never be met, nothing is returned but the
// error for the first module that is stuck.
func Sort(as []Annotation) ([]Annotation, error) {
	placed := make(map[Kind]bool)
	done := make([]bool, len(as))
	ret := make([]Annotation, 0, len(as))
	have := func(k Kind) bool { return placed[k] }
	for len(ret) < len(as) {
		progress := false
		for i, a := range as {
			if done[i] || missing(a.Requires(), have) != nil {
				continue
			}
			if placed[a.Provides()] {
				return nil, &DependencyError{Module: a.Provides(), Dup: true}
			}
			placed[a.Provides()] = true
			done[i] = true
			ret = append(ret, a)
			progress = true
			break // go back to the start to keep the original order
		}
		if !progress {
			for i, a := range as {
				if !done[i] {
					return nil, &DependencyError{Module: a.Provides(), Missing: missing(a.Requires(), have)}
				}
			}
		}
	}
	return ret, nil
}

// RegisterAll sorts the modules and registers them.
func (m *Model) RegisterAll(as ...Annotation) error {
	sorted, err := Sort(as)
	if err != nil {
		return err
	}
	for _, a := range sorted {
		if err := m.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// Annotate calls Update on every module in registration order.
// An error from a module stops everything. Warnings are cleared first.
func (m *Model) Annotate() error {
	m.warnings = nil
	for _, a := range m.annots {
		if err := a.Update(m); err != nil {
			return fmt.Errorf("annotation %v: %w", a.Provides(), err)
		}
	}
	return nil
}

// Lookup returns the module providing k.
func (m *Model) Lookup(k Kind) (Annotation, bool) {
	a, ok := m.provided[k]
	return a, ok
}

// Need is Lookup with an error wrapping ErrLookupMiss.
func (m *Model) Need(k Kind) (Annotation, error) {
	if a, ok := m.provided[k]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%v: %w", k, ErrLookupMiss)
}

// Get looks up k and checks it has the expected type.
func Get[T Annotation](m *Model, k Kind) (T, error) {
	var zero T
	a, err := m.Need(k)
	if err != nil {
		return zero, err
	}
	t, ok := a.(T)
	if !ok {
		return zero, fmt.Errorf("%v is a %T: %w", k, a, ErrLookupMiss)
	}
	return t, nil
}

// Kinds returns what has been registered, in order
func (m *Model) Kinds() []Kind {
	ret := make([]Kind, len(m.annots))
	for i, a := range m.annots {
		ret[i] = a.Provides()
	}
	return ret
}

// Warn attaches a recoverable problem to the model and logs it.
func (m *Model) Warn(err error) {
	m.log.Println("warning:", err)
	m.warnings = append(m.warnings, err)
}

// Warnings from the last call to Annotate()
func (m *Model) Warnings() []error { return m.warnings }

// Output writes one block per kind. Given no kinds, write everything
// registered.
func (m *Model) Output(w io.Writer, kinds ...Kind) {
	if len(kinds) == 0 {
		kinds = m.Kinds()
	}
	for _, k := range kinds {
		name := k.String()
		fmt.Fprintln(w, name, strings.Repeat("-", 60-len(name)))
		if a, ok := m.provided[k]; ok {
			a.Output(w)
		} else {
			fmt.Fprintln(w, "not available")
		}
	}
}
