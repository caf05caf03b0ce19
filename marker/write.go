package marker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Delim is the character used to delimit the output
const Delim = '\t'

// ErrMissingPosition is returned when a gene could not be placed.
var ErrMissingPosition = errors.New("no gene feature was found for gene")

// Marker is one row of a GAPIT marker map.
type Marker struct {
	Name       string `csv:"Name"`
	Chromosome string `csv:"Chromosome"`
	Position   int    `csv:"Position"`
}

// Build orders the positions by genes, which is also the column order of the
// genotype table. Every gene must have a position.
func Build(genes []string, positions map[string]Position) ([]Marker, error) {
	out := make([]Marker, 0, len(genes))
	for _, gene := range genes {
		pos, exists := positions[gene]
		if !exists {
			return nil, pfx.Err(fmt.Errorf("%w %s", ErrMissingPosition, gene))
		}

		out = append(out, Marker{Name: gene, Chromosome: pos.Chromosome, Position: pos.Position})
	}

	return out, nil
}

// WriteMap writes the GAPIT marker map (GM) table: a
// Name/Chromosome/Position header and one row per marker.
func WriteMap(w io.Writer, markers []Marker) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delim

	if err := gocsv.MarshalCSV(&markers, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}
