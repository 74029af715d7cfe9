// 19 Oct 2026
// Read an interaction graph of an RNA structure and annotate its
// secondary and tertiary structure.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/rnaannot/pkg/common"
	"github.com/andrew-torda/rnaannot/pkg/rnaannot"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[flags] [infile [outfile]]")
	long := `Given no arguments, read the graph from stdin and write to stdout.
Given one argument, read from the given file name, but write to stdout.
Given two arguments, read from the first one, write to the second.
Flags given here override values from a config file.`
	fmt.Fprintln(os.Stderr, long)
	flag.PrintDefaults()
}

func main() {
	var flags rnaannot.CmdFlag
	var infile, outfile string
	flag.StringVar(&flags.Annot, "a", "", "comma separated annotations to print, default all")
	flag.StringVar(&flags.Chains, "c", "", "comma separated chains to keep, default all")
	flag.StringVar(&flags.Config, "config", "", "TOML config file")
	flag.StringVar(&flags.DotBracket, "d", "", "write dot-bracket to this file, - for stdout")
	flag.IntVar(&flags.ExactMax, "e", 24, "exact layer search below this many stems")
	flag.IntVar(&flags.MaxGap, "g", 20, "longest gap in numbering to fill")
	flag.StringVar(&flags.Mask, "k", "", "interactions to keep: a(djacent) s(tack) p(air) b(ackbone)")
	flag.IntVar(&flags.MaxCycle, "cycle", 10, "largest cycle to look at")
	flag.IntVar(&flags.MaxLayers, "layers", 10, "maximum number of layers, 0 for no limit")
	flag.StringVar(&flags.LogFile, "log", "", "log to this file, or stdout")
	flag.BoolVar(&flags.Loose, "loose", false, "keep lone pairs as stems for layering")
	flag.BoolVar(&flags.MultiChain, "multichain", false, "keep cycles spanning chains")
	flag.IntVar(&flags.NCombined, "n", 1, "number of layers on the combined line")
	flag.BoolVar(&flags.NoGapFill, "nofill", false, "do not fill gaps in residue numbering")
	flag.StringVar(&flags.Plot, "p", "", "write a PNG arc plot of the first chain")
	flag.IntVar(&flags.NSplit, "s", 0, "number of layers written one per line")
	flag.BoolVar(&flags.Strict, "strict", false, "treat warnings as an error")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	flags.Set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { flags.Set[f.Name] = true })
	if flag.NArg() > 0 {
		infile = flag.Arg(0)
		if flag.NArg() > 1 {
			outfile = flag.Arg(1)
		}
		if flag.NArg() > 2 {
			usage()
			os.Exit(ExitUsageError)
		}
	}

	if err := rnaannot.Mymain(&flags, infile, outfile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	} else {
		os.Exit(ExitSuccess)
	}
}
