// Package chrom recodes soybean pangenome sequence names into the numeric
// chromosome codes that GAPIT requires.
package chrom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BenLubar/memoize"
)

const (
	// ChromosomeMarker identifies assembled chromosomes, e.g. Gm01.
	ChromosomeMarker = "Gm"

	// ScaffoldPrefix identifies unplaced scaffolds, e.g. sc0003.
	ScaffoldPrefix = "sc"

	// PangenomePrefix identifies pangenome-specific sequences, e.g. UwaXYZ.
	PangenomePrefix = "Uwa"

	// ScaffoldCode and PangenomeCode sit above the 20 soybean chromosomes, the
	// same way Plink numbers X, Y, XY and MT after the autosomes.
	ScaffoldCode  = "21"
	PangenomeCode = "22"
)

// ErrUnrecognized is returned for sequence names that follow none of the known
// naming conventions.
var ErrUnrecognized = errors.New("unrecognized chromosome")

var memoizedNormalize = memoize.Memoize(normalize)

// Normalize maps a sequence name to its GAPIT chromosome code:
//
//	Gm01   -> 1
//	Gm10   -> 10
//	sc0003 -> 21
//	UwaXYZ -> 22
//
// Anything else, including a signed or zero chromosome number such as Gm-1
// or Gm00, is an error wrapping ErrUnrecognized. Results, errors
// included, are cached per sequence name.
func Normalize(seqID string) (string, error) {
	return memoizedNormalize.(func(string) (string, error))(seqID)
}

func normalize(seqID string) (string, error) {
	switch {
	case strings.Contains(seqID, ChromosomeMarker):
		// strconv drops the leading zero from Gm01
		digits := strings.ReplaceAll(seqID, ChromosomeMarker, "")
		n, err := strconv.Atoi(digits)
		if err != nil {
			return "", fmt.Errorf("%w %q: %v", ErrUnrecognized, seqID, err)
		}
		if n < 1 || strings.HasPrefix(digits, "+") {
			return "", fmt.Errorf("%w %q: chromosome numbers are unsigned and start at 1", ErrUnrecognized, seqID)
		}
		return strconv.Itoa(n), nil
	case strings.HasPrefix(seqID, ScaffoldPrefix):
		return ScaffoldCode, nil
	case strings.HasPrefix(seqID, PangenomePrefix):
		return PangenomeCode, nil
	}

	return "", fmt.Errorf("%w %q: expected a name containing %q or starting with %q or %q", ErrUnrecognized, seqID, ChromosomeMarker, ScaffoldPrefix, PangenomePrefix)
}
