// 19 Oct 2026

// Package rnaannot reads an interaction graph, runs every annotation
// module over it and writes the results.
package rnaannot

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"
	"time"

	"github.com/andrew-torda/rnaannot/pkg/annot"
	"github.com/andrew-torda/rnaannot/pkg/arcplot"
	"github.com/andrew-torda/rnaannot/pkg/cycle"
	"github.com/andrew-torda/rnaannot/pkg/graph"
	"github.com/andrew-torda/rnaannot/pkg/interact"
	"github.com/andrew-torda/rnaannot/pkg/layer"
	"github.com/andrew-torda/rnaannot/pkg/loop"
	"github.com/andrew-torda/rnaannot/pkg/stem"
)

// CmdFlag has the command line flags
type CmdFlag struct {
	Config     string // TOML file with settings
	LogFile    string // "" to discard, "stdout" or a file name
	Chains     string // comma separated chain names to keep
	Mask       string // interaction letters to keep, a s p b
	Annot      string // comma separated kinds to print, empty for all
	DotBracket string // write dot-bracket here, "-" for standard output
	Plot       string // write a PNG arc plot of the first chain here
	NCombined  int
	NSplit     int
	ExactMax   int
	MaxLayers  int
	MaxGap     int
	MaxCycle   int
	NoGapFill  bool
	MultiChain bool
	Loose      bool
	Strict     bool            // warnings become an error
	Time       bool            // do we want to print out run time ?
	Set        map[string]bool // names of flags given on the command line
}

// ErrWarnings is returned in strict mode if annotation gave warnings
var ErrWarnings = errors.New("annotation produced warnings")

// logWhere decide where to send output
func logWhere(outinfo string) (*log.Logger, io.Closer, error) {
	var iowriter io.Writer
	var closer io.Closer = nopCloser{}
	switch outinfo { // Decide where to send the logged output
	case "":
		iowriter = ioutil.Discard
	case "stdout":
		iowriter = os.Stdout
	default:
		fp, err := os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		iowriter, closer = fp, fp
	}
	return log.New(iowriter, "", log.Lshortfile), closer, nil
}

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		fmt.Fprintln(os.Stderr, "Warning, trashing old version of", fname)
	}
}

// splitList breaks a comma separated list, dropping empty bits
func splitList(s string) []string {
	var ret []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			ret = append(ret, f)
		}
	}
	return ret
}

// merge puts flags from the command line on top of the config
func (flags *CmdFlag) merge(cfg *Config) {
	set := func(name string) bool { return flags.Set[name] }
	if set("log") {
		cfg.LogFile = flags.LogFile
	}
	if set("c") {
		cfg.Chains = splitList(flags.Chains)
	}
	if set("k") {
		cfg.Mask = flags.Mask
	}
	if set("a") {
		cfg.Annot = splitList(flags.Annot)
	}
	if set("d") {
		cfg.DotBracket = flags.DotBracket
	}
	if set("p") {
		cfg.Plot = flags.Plot
	}
	if set("n") {
		cfg.Layers.Combined = flags.NCombined
	}
	if set("s") {
		cfg.Layers.Split = flags.NSplit
	}
	if set("e") {
		cfg.Layers.ExactMax = flags.ExactMax
	}
	if set("layers") {
		cfg.Layers.MaxLayers = flags.MaxLayers
	}
	if set("g") {
		cfg.Layers.MaxGap = flags.MaxGap
	}
	if set("nofill") {
		cfg.Layers.GapFill = !flags.NoGapFill
	}
	if set("loose") {
		cfg.Layers.Loose = flags.Loose
	}
	if set("cycle") {
		cfg.Cycles.MaxSize = flags.MaxCycle
	}
	if set("multichain") {
		cfg.Cycles.MultiChain = flags.MultiChain
	}
	if set("strict") {
		cfg.Strict = flags.Strict
	}
}

// readGraph from a file or standard input
func readGraph(infile string) (*graph.Graph, error) {
	if infile == "" || infile == "-" {
		return graph.Read(os.Stdin)
	}
	return graph.ReadFile(infile)
}

// modules builds the pipeline. The order here does not matter, Sort
// fixes it.
func modules(cfg *Config) []annot.Annotation {
	cy := cycle.NewCycles()
	cy.Opts = cfg.cycleOpts()
	ly := layer.New()
	ly.Opts = cfg.layerOpts()
	return []annot.Annotation{
		ly, cycle.NewStructures(), cy, cycle.NewStacks(), cycle.NewPairs(),
		loop.NewLoops(), loop.NewLinkers(), stem.New(), interact.New(),
	}
}

// create opens a file for output, "-" or "" meaning standard output
func create(fname string) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return nopCloser{os.Stdout}, nil
	}
	warnExists(fname)
	return os.Create(fname)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// writeDotBracket for every chain
func writeDotBracket(fname string, m *annot.Model) error {
	la, err := layer.From(m)
	if err != nil {
		return err
	}
	fp, err := create(fname)
	if err != nil {
		return fmt.Errorf("dot-bracket file: %w", err)
	}
	if err := la.WriteDotBracket(fp); err != nil {
		fp.Close()
		return fmt.Errorf("dot-bracket file %s: %w", fname, err)
	}
	return fp.Close()
}

// writePlot draws the first chain
func writePlot(fname string, m *annot.Model) error {
	la, err := layer.From(m)
	if err != nil {
		return err
	}
	if len(la.Chains) == 0 {
		return errors.New("plot: no chains")
	}
	warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("plot file: %w", err)
	}
	if err := arcplot.Draw(fp, la.Chains[0].DB, arcplot.DefaultOptions); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// Mymain reads the graph in infile, annotates it and writes to outfile
func Mymain(flags *CmdFlag, infile, outfile string) error {
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			fmt.Fprintln(os.Stderr, "finished after", time.Since(startTime).Milliseconds(), "ms")
		}
		defer end()
	}
	cfg := DefaultConfig()
	if flags.Config != "" {
		if err := LoadConfig(flags.Config, &cfg); err != nil {
			return err
		}
	}
	flags.merge(&cfg)
	if err := cfg.check(); err != nil {
		return err
	}
	lg, lgClose, err := logWhere(cfg.LogFile)
	if err != nil {
		return err
	}
	defer lgClose.Close()

	kinds, err := annot.ParseKinds(strings.Join(cfg.Annot, ","))
	if err != nil {
		return err
	}
	mask, err := graph.ParseMask(cfg.Mask)
	if err != nil {
		return err
	}
	g, err := readGraph(infile)
	if err != nil {
		return fmt.Errorf("reading graph: %w", err)
	}
	if g, err = g.Filter(cfg.Chains, mask); err != nil {
		return err
	}
	lg.Println(infile, g.Len(), "residues", len(g.Edges()), "edges")

	m := annot.NewModel(g, lg)
	if err := m.RegisterAll(modules(&cfg)...); err != nil {
		return err
	}
	if err := m.Annotate(); err != nil {
		return err
	}

	fp, err := create(outfile)
	if err != nil {
		return fmt.Errorf("output file: %w", err)
	}
	m.Output(fp, kinds...)
	if err := fp.Close(); err != nil {
		return fmt.Errorf("output file %s: %w", outfile, err)
	}
	if cfg.DotBracket != "" {
		if err := writeDotBracket(cfg.DotBracket, m); err != nil {
			return err
		}
	}
	if cfg.Plot != "" {
		if err := writePlot(cfg.Plot, m); err != nil {
			return err
		}
	}
	for _, w := range m.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if cfg.Strict && len(m.Warnings()) > 0 {
		return fmt.Errorf("%d: %w", len(m.Warnings()), ErrWarnings)
	}
	return nil
}
