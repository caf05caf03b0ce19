package gapitprep

import (
	"fmt"
	"strconv"
)

// Map columns in the GFF file to their positions
const (
	SeqID int = iota
	Source
	FeatureType
	Start
	End
	Score
	Strand
	Phase
	Attributes
)

// GFFRow holds the nine GFF columns as text. Coordinates are 1-based and
// inclusive, as written in the file.
type GFFRow struct {
	Line       int // 1-based line number in the source file
	SeqID      string
	Source     string
	Feature    string
	Start      string
	End        string
	Score      string
	Strand     string
	Phase      string
	Attributes string // Semicolon-delimited key=value pairs
}

// Interval parses Start and End. The values are returned as written; callers
// that need start <= end must order them.
func (r *GFFRow) Interval() (start, end int, err error) {
	start, err = strconv.Atoi(r.Start)
	if err != nil {
		return 0, 0, fmt.Errorf("GFF line %d: start %q: %w", r.Line, r.Start, err)
	}

	end, err = strconv.Atoi(r.End)
	if err != nil {
		return 0, 0, fmt.Errorf("GFF line %d: end %q: %w", r.Line, r.End, err)
	}

	return start, end, nil
}
