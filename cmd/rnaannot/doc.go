// 19 Oct 2026

/*
Rnaannot annotates the secondary and tertiary structure of an RNA from a
graph of classified interactions between residues.

It finds Watson-Crick pairs, groups them into stems, walks the linkers
between stems and merges them into loops (hairpin, bulge, internal,
multibranch, open). Interactions and cycles of the cycle basis which are
not explained by stems and loops are called tertiary. The stems of each
chain are split into pseudoknot free layers and written in dot-bracket
notation.

Given no explicit input path, it reads from standard input.
Given no output filename, it writes to standard output.
Input may be gzipped.

Usage:

	rnaannot [flags] [input [output]]

The flags are:

	-a Stems,Loops
		Only print these annotations. Names are Interactions, Stems,
		Linkers, Loops, TertiaryPairs, TertiaryStacks, Cycles,
		TertiaryStructures and Layers.
	-c A,B
		Only keep these chains
	-cycle num
		Largest cycle, in residues, to consider for tertiary structure
	-config file.toml
		Read settings from a TOML file. Flags on the command line win.
	-d file
		Write the dot-bracket text to a file, - for standard output
	-e num
		Use the exact layer search for fewer stems than this, otherwise
		be greedy
	-g num
		Longest gap in residue numbering to fill with X and .
	-k aspb
		Interactions to keep, adjacent, stacking, pairing, backbone
	-layers num
		Maximum number of layers. 0 means as many as are needed.
	-log file
		Write a log. "stdout" for standard output.
	-loose
		Lone pairs are stems for layering, overlaps removed
	-multichain
		Keep cycles with residues from more than one chain
	-n num
		Number of layers drawn together on the first structure line
	-nofill
		Do not fill gaps in residue numbering
	-p file.png
		Draw an arc plot of the first chain
	-s num
		Number of layers drawn one per line after the combined line
	-strict
		Warnings, like residues in two structures or gaps too long, are an error
	-t
		Print timing

A config file looks like

	chains = ["A"]
	annot = ["Stems", "Loops", "Layers"]
	[layers]
	exact_max = 20
	combined = 2
	split = 2
	[cycles]
	max_size = 8
*/
package main
