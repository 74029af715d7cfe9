// 19 Oct 2026

package annot

import (
	"fmt"
	"strings"
)

// Kind names what an annotation provides. Other annotations ask for it
// by this value.
type Kind int

const (
	Interactions Kind = iota
	Stems
	Linkers
	Loops
	TertiaryPairs
	TertiaryStacks
	Cycles
	TertiaryStructures
	Layers
	nKind
)

var kindNames = [nKind]string{
	Interactions:       "Interactions",
	Stems:              "Stems",
	Linkers:            "Linkers",
	Loops:              "Loops",
	TertiaryPairs:      "TertiaryPairs",
	TertiaryStacks:     "TertiaryStacks",
	Cycles:             "Cycles",
	TertiaryStructures: "TertiaryStructures",
	Layers:             "Layers",
}

func (k Kind) String() string {
	if k < 0 || k >= nKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// AllKinds in pipeline order
func AllKinds() []Kind {
	ret := make([]Kind, nKind)
	for i := range ret {
		ret[i] = Kind(i)
	}
	return ret
}

// ParseKind is case insensitive
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i), nil
		}
	}
	return -1, fmt.Errorf("unknown annotation %q", s)
}

// ParseKinds reads a comma separated list. Empty gives nil.
func ParseKinds(s string) ([]Kind, error) {
	var ret []Kind
	for _, w := range strings.Split(s, ",") {
		if w = strings.TrimSpace(w); w == "" {
			continue
		}
		k, err := ParseKind(w)
		if err != nil {
			return nil, err
		}
		ret = append(ret, k)
	}
	return ret, nil
}
