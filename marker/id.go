package marker

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// IDPrefix starts the first attribute of every gene feature.
	IDPrefix = "ID="

	// AnnotationSuffix ends gene ids in the annotation (GlymaLee.01G000100.1.v1.1)
	// and GenotypeSuffix replaces it to match the PAV matrix
	// (GlymaLee.01G000100.1.p).
	AnnotationSuffix = ".v1.1"
	GenotypeSuffix   = ".p"
)

// ErrMissingID is returned when a gene feature's attributes do not start with
// an ID field.
var ErrMissingID = errors.New("attributes do not start with " + IDPrefix)

// NormalizeID extracts the gene id from a GFF attribute block and rewrites it
// to the PAV matrix naming convention:
//
//	ID=GlymaLee.01G000100.1.v1.1;Name=GlymaLee.01G000100 -> GlymaLee.01G000100.1.p
func NormalizeID(attributes string) (string, error) {
	first := attributes
	if i := strings.IndexByte(attributes, ';'); i >= 0 {
		first = attributes[:i]
	}

	if !strings.HasPrefix(first, IDPrefix) {
		return "", fmt.Errorf("%w: %q", ErrMissingID, attributes)
	}

	id := strings.TrimPrefix(first, IDPrefix)
	if strings.HasSuffix(id, AnnotationSuffix) {
		id = strings.TrimSuffix(id, AnnotationSuffix) + GenotypeSuffix
	}

	return id, nil
}

// Midpoint returns the integer midpoint of a 1-based inclusive interval,
// rounding toward start. The bounds may be given in either order.
func Midpoint(start, end int) int {
	if start > end {
		start, end = end, start
	}

	return start + (end-start)/2
}
