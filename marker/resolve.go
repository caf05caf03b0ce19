// Package marker places PAV genes on the genome and writes the GAPIT marker
// map (GM) table.
package marker

import (
	"fmt"

	"github.com/carbocation/gapitprep"
	"github.com/carbocation/gapitprep/chrom"
	"github.com/carbocation/pfx"
)

// GeneFeature is the GFF feature type that carries gene models.
const GeneFeature = "gene"

// Position is a single-coordinate stand-in for a gene model.
type Position struct {
	Chromosome string
	Position   int
}

// ResolveReport counts what Resolve did with the annotation.
type ResolveReport struct {
	GeneFeatures int // Rows whose feature type is GeneFeature
	Kept         int // Gene features whose id is in the gene set
	Overwritten  int // Kept features that replaced an earlier one with the same id
}

// RowReader yields GFF rows until it returns nil. *gapitprep.GFF satisfies it.
type RowReader interface {
	Read() *gapitprep.GFFRow
	Err() error
}

// Resolve scans the annotation for gene features whose normalized id is in
// genes, and returns each one's chromosome code and midpoint. When several
// features share an id, the last one wins.
//
// Gene features that do not start with an ID attribute, and kept features on
// an unrecognized sequence, are errors.
func Resolve(rows RowReader, genes map[string]struct{}) (map[string]Position, ResolveReport, error) {
	out := make(map[string]Position)
	report := ResolveReport{}

	for row := rows.Read(); row != nil; row = rows.Read() {
		if row.Feature != GeneFeature {
			continue
		}
		report.GeneFeatures++

		id, err := NormalizeID(row.Attributes)
		if err != nil {
			return nil, report, pfx.Err(fmt.Errorf("GFF line %d: %w", row.Line, err))
		}

		if _, wanted := genes[id]; !wanted {
			continue
		}

		pos, err := positionOf(row)
		if err != nil {
			return nil, report, pfx.Err(fmt.Errorf("gene %s: %w", id, err))
		}

		if _, exists := out[id]; exists {
			report.Overwritten++
		}
		out[id] = pos
		report.Kept++
	}

	if err := rows.Err(); err != nil {
		return nil, report, pfx.Err(err)
	}

	return out, report, nil
}

func positionOf(row *gapitprep.GFFRow) (Position, error) {
	start, end, err := row.Interval()
	if err != nil {
		return Position{}, err
	}

	chr, err := chrom.Normalize(row.SeqID)
	if err != nil {
		return Position{}, fmt.Errorf("GFF line %d: %w", row.Line, err)
	}

	return Position{Chromosome: chr, Position: Midpoint(start, end)}, nil
}
