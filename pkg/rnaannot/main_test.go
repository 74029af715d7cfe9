// 19 Oct 2026

package rnaannot_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/rnaannot/pkg/common"
	. "github.com/andrew-torda/rnaannot/pkg/rnaannot"
)

// A hairpin in chain A and a lone residue in chain B
const hairpin = `name HP
model 1
res A:1 A
res A:2 G
res A:3 G
res A:4 G
res A:5 A
res A:6 A
res A:7 A
res A:8 A
res A:9 C
res A:10 C
res A:11 C
res A:12 A
res B:1 G
edge A:2 A:11 pair Ww Ww cis anti
edge A:3 A:10 pair Ww Ww cis anti
edge A:4 A:9 pair Ww Ww cis anti
edge A:2 A:3 stack adj
edge A:3 A:4 stack adj
cycle A:2 A:3 A:10 A:11
`

// Crossing stems make residues belong to two elements
const knotted = `res A:1 G
res A:2 G
res A:3 A
res A:4 A
res A:5 G
res A:6 G
res A:7 A
res A:8 A
res A:9 C
res A:10 C
res A:11 A
res A:12 A
res A:13 C
res A:14 C
edge A:1 A:10 pair Ww Ww cis anti
edge A:2 A:9 pair Ww Ww cis anti
edge A:5 A:14 pair Ww Ww cis anti
edge A:6 A:13 pair Ww Ww cis anti
`

// tmpFiles writes the graph and returns its name and a name for output
func tmpFiles(t *testing.T, s string) (string, string) {
	t.Helper()
	fname, err := common.WrtTemp(s)
	if err != nil {
		t.Fatal("Fail writing test file", err)
	}
	t.Cleanup(func() { os.Remove(fname) })
	return fname, filepath.Join(t.TempDir(), "out")
}

func readString(t *testing.T, fname string) string {
	t.Helper()
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestMymain(t *testing.T) {
	fname, outfile := tmpFiles(t, hairpin)
	dir := t.TempDir()
	flags := CmdFlag{
		DotBracket: filepath.Join(dir, "db"),
		Plot:       filepath.Join(dir, "plot.png"),
		Set:        map[string]bool{"d": true, "p": true},
	}
	if err := Mymain(&flags, fname, outfile); err != nil {
		t.Fatal(err)
	}
	out := readString(t, outfile)
	for _, s := range []string{"Stems", "hairpin, 1 linkers, 4 residues", "TertiaryStructures"} {
		if !strings.Contains(out, s) {
			t.Error("output is missing", s)
		}
	}
	want := ">HP:1:A|PDBID|MODEL|CHAIN|SEQUENCE\nAGGGAAAACCCA\n.(((....))).\n" +
		">HP:1:B|PDBID|MODEL|CHAIN|SEQUENCE\nG\n.\n"
	if got := readString(t, flags.DotBracket); got != want {
		t.Errorf("dot-bracket got\n%s\nwanted\n%s", got, want)
	}
	if fi, err := os.Stat(flags.Plot); err != nil || fi.Size() == 0 {
		t.Error("no plot written", err)
	}
}

func TestChoose(t *testing.T) {
	fname, outfile := tmpFiles(t, hairpin)
	flags := CmdFlag{Annot: "stems", Chains: "B", Set: map[string]bool{"a": true, "c": true}}
	if err := Mymain(&flags, fname, outfile); err != nil {
		t.Fatal(err)
	}
	out := readString(t, outfile)
	if !strings.HasPrefix(out, "Stems") || strings.Contains(out, "Loops") {
		t.Error("only stems wanted, got\n", out)
	}
	flags = CmdFlag{Annot: "helices", Set: map[string]bool{"a": true}}
	if err := Mymain(&flags, fname, outfile); err == nil {
		t.Error("unknown annotation should fail")
	}
	flags = CmdFlag{}
	if err := Mymain(&flags, fname+"nonexistent", outfile); err == nil {
		t.Error("missing input should fail")
	}
}

func TestStrict(t *testing.T) {
	fname, outfile := tmpFiles(t, knotted)
	flags := CmdFlag{}
	if err := Mymain(&flags, fname, outfile); err != nil {
		t.Fatal("warnings are not an error by default", err)
	}
	flags = CmdFlag{Strict: true, Set: map[string]bool{"strict": true}}
	if err := Mymain(&flags, fname, outfile); !errors.Is(err, ErrWarnings) {
		t.Error("wanted ErrWarnings, got", err)
	}
}

func TestConfig(t *testing.T) {
	cfgText := `annot = ["Stems", "Layers"]
[layers]
combined = 1
split = 2
struct_gap = "-"
[cycles]
max_size = 6
`
	cname, err := common.WrtTemp(cfgText)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(cname)
	cfg := DefaultConfig()
	if err := LoadConfig(cname, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Layers.Split != 2 || cfg.Cycles.MaxSize != 6 || cfg.Layers.ExactMax != 24 {
		t.Errorf("config not merged with defaults %+v", cfg)
	}
	if len(cfg.Annot) != 2 || cfg.Annot[1] != "Layers" {
		t.Error("annot list wrong", cfg.Annot)
	}

	bad := []string{
		"colour = \"red\"\n",
		"[layers]\nseq_gap = \"XY\"\n",
		"[layers\n",
	}
	for _, s := range bad {
		name, err := common.WrtTemp(s)
		if err != nil {
			t.Fatal(err)
		}
		defer os.Remove(name)
		cfg := DefaultConfig()
		if err := LoadConfig(name, &cfg); err == nil {
			t.Errorf("config %q should fail", s)
		}
	}
}

// Flags on the command line beat the file
func TestConfigFlags(t *testing.T) {
	cname, err := common.WrtTemp("annot = [\"Loops\"]\ndot_bracket = \"\"\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(cname)
	fname, outfile := tmpFiles(t, hairpin)
	flags := CmdFlag{Config: cname, Annot: "Stems", Set: map[string]bool{"a": true}}
	if err := Mymain(&flags, fname, outfile); err != nil {
		t.Fatal(err)
	}
	if out := readString(t, outfile); strings.Contains(out, "Loops") {
		t.Error("flag should win over the config file, got\n", out)
	}
}
