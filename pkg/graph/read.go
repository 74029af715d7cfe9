// 19 Oct 2026
// Reader for the line based interaction graph format.
//   name 1EHZ
//   model 1
//   res A:1 G
//   edge A:1 A:72 pair Ww Ww cis anti
//   edge A:1 A:2 stack adj
//   cycle A:1 A:2 A:71 A:72
// Anything after a # is a comment.

package graph

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/andrew-torda/rnaannot/pkg/zwrap"
	"github.com/edsrzf/mmap-go"
)

const (
	cmmtChar  = '#'
	maxMsgLen = 70
)

// ParseError remembers the line number and the start of the line.
type ParseError struct {
	Line int
	Text string
	Desc string
}

func (e *ParseError) Error() string {
	s := e.Text
	if len(s) > maxMsgLen {
		s = s[:maxMsgLen]
	}
	return "line " + strconv.Itoa(e.Line) + ": " + e.Desc + "\nline starting with\n" + s
}

// lineRdr carries the state while reading
type lineRdr struct {
	g    *Graph
	n    int
	line string
}

func (l *lineRdr) fail(format string, a ...interface{}) error {
	return &ParseError{Line: l.n, Text: l.line, Desc: fmt.Sprintf(format, a...)}
}

// parsePair reads the four tokens after "pair".
func (l *lineRdr) parsePair(f []string, e *Edge) error {
	if len(f) < 4 {
		return l.fail("pair wants two faces, cis|trans, anti|para")
	}
	e.Flags |= Pairing
	e.Face1, e.Face2 = Face(f[0]), Face(f[1])
	switch f[2] {
	case "cis":
		e.Cis = true
	case "trans":
		e.Cis = false
	default:
		return l.fail("want cis or trans, got %q", f[2])
	}
	switch f[3] {
	case "anti":
		e.Parallel = false
	case "para":
		e.Parallel = true
	default:
		return l.fail("want anti or para, got %q", f[3])
	}
	return nil
}

func (l *lineRdr) resid(s string) (ResID, error) {
	r, err := ParseResID(s)
	if err != nil {
		return r, l.fail("%v", err)
	}
	return r, nil
}

func (l *lineRdr) edge(f []string) error {
	if len(f) < 3 {
		return l.fail("edge wants two residues and at least one type")
	}
	a, err := l.resid(f[0])
	if err != nil {
		return err
	}
	b, err := l.resid(f[1])
	if err != nil {
		return err
	}
	var e Edge
	for f = f[2:]; len(f) > 0; {
		switch f[0] {
		case "pair":
			if err := l.parsePair(f[1:], &e); err != nil {
				return err
			}
			f = f[5:]
		case "stack":
			e.Flags |= Stacking
			f = f[1:]
		case "adj":
			e.Flags |= Adjacent
			f = f[1:]
			if len(f) > 0 && f[0] == "rev" {
				e.Rev = true
				f = f[1:]
			}
		case "bb":
			e.Flags |= Backbone
			f = f[1:]
		default:
			return l.fail("unknown interaction %q", f[0])
		}
	}
	if err := l.g.AddEdge(a, b, e); err != nil {
		return l.fail("%v", err)
	}
	return nil
}

func (l *lineRdr) doLine(f []string) error {
	switch f[0] {
	case "name":
		if len(f) != 2 {
			return l.fail("name wants one word")
		}
		l.g.Name = f[1]
	case "model":
		if len(f) != 2 {
			return l.fail("model wants one number")
		}
		n, err := strconv.Atoi(f[1])
		if err != nil {
			return l.fail("%v", err)
		}
		l.g.Model = n
	case "res":
		if len(f) != 3 || len(f[2]) == 0 {
			return l.fail("res wants residue and type")
		}
		r, err := l.resid(f[1])
		if err != nil {
			return err
		}
		if err := l.g.AddResidue(r, f[2][0]); err != nil {
			return l.fail("%v", err)
		}
	case "edge":
		return l.edge(f[1:])
	case "cycle":
		ids := make([]ResID, 0, len(f)-1)
		for _, s := range f[1:] {
			r, err := l.resid(s)
			if err != nil {
				return err
			}
			ids = append(ids, r)
		}
		if err := l.g.AddCycle(ids...); err != nil {
			return l.fail("%v", err)
		}
	default:
		return l.fail("unknown record %q", f[0])
	}
	return nil
}

// Read parses a graph from a reader and returns it finished.
func Read(rdr io.Reader) (*Graph, error) {
	l := lineRdr{g: New("", 1)}
	scnnr := bufio.NewScanner(rdr)
	for scnnr.Scan() {
		l.n++
		l.line = scnnr.Text()
		s := l.line
		if i := strings.IndexByte(s, cmmtChar); i != -1 {
			s = s[:i]
		}
		f := strings.Fields(s)
		if len(f) == 0 {
			continue
		}
		if err := l.doLine(f); err != nil {
			return nil, err
		}
	}
	if err := scnnr.Err(); err != nil {
		return nil, fmt.Errorf("reading graph after line %d: %w", l.n, err)
	}
	if l.g.Len() == 0 {
		return nil, errors.New("no residues found")
	}
	return l.g, l.g.Finish()
}

// ReadFile reads a graph file. Gzipped files are decompressed on the fly,
// plain files are mapped into memory.
func ReadFile(fname string) (*Graph, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	gz, err := zwrap.Sniff(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	if gz {
		zr, err := zwrap.Wrap(fp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		g, err := Read(zr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		return g, nil
	}
	if fi, err := fp.Stat(); err != nil {
		return nil, err
	} else if fi.Size() == 0 {
		return nil, fmt.Errorf("%s: empty file", fname)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	defer mm.Unmap()
	g, err := Read(bytes.NewReader(mm))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return g, nil
}
