package pav

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Read parses a whitespace-delimited PAV matrix. The first line is a header
// whose first token labels the gene column ("Individual") and whose remaining
// tokens name the individuals. Each following line is a gene id followed by
// one allele per individual, in header order.
//
// Rows whose allele count differs from the number of individuals are
// rejected, as are headers that name the same individual twice and gene ids
// that a CSV writer would have to quote. Blank lines are skipped.
func Read(r io.Reader) (*Matrix, error) {
	br := bufio.NewReader(r)

	m := &Matrix{}
	seenGenes := make(map[string]struct{})
	sawHeader := false

	var line string
	var err error
	for i := 1; ; i++ {
		line, err = br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, pfx.Err(fmt.Errorf("PAV line %d: %w", i, err))
		}
		atEOF := err == io.EOF

		fields := strings.Fields(line)
		if len(fields) == 0 {
			if atEOF {
				break
			}
			continue
		}

		if !sawHeader {
			sawHeader = true
			if err := m.setIndividuals(fields[1:]); err != nil {
				return nil, pfx.Err(fmt.Errorf("PAV header: %w", err))
			}
		} else if err := m.addGene(fields, seenGenes); err != nil {
			return nil, pfx.Err(fmt.Errorf("PAV line %d: %w", i, err))
		}

		if atEOF {
			break
		}
	}

	if !sawHeader {
		return nil, pfx.Err(fmt.Errorf("PAV matrix is empty; expected a header line naming the individuals"))
	}

	return m, nil
}

func (m *Matrix) setIndividuals(individuals []string) error {
	seen := make(map[string]struct{}, len(individuals))
	for _, ind := range individuals {
		if _, exists := seen[ind]; exists {
			return fmt.Errorf("individual %s is named more than once", ind)
		}
		seen[ind] = struct{}{}
	}

	m.Individuals = individuals
	m.Calls = make([][]string, len(individuals))

	return nil
}

func (m *Matrix) addGene(fields []string, seenGenes map[string]struct{}) error {
	gene, alleles := fields[0], fields[1:]
	if err := checkGeneID(gene); err != nil {
		return err
	}
	if x, y := len(alleles), len(m.Individuals); x != y {
		return fmt.Errorf("gene %s has %d alleles but the header names %d individuals", gene, x, y)
	}

	if _, exists := seenGenes[gene]; exists {
		m.DuplicateGenes++
	}
	seenGenes[gene] = struct{}{}

	m.Genes = append(m.Genes, gene)
	for j, allele := range alleles {
		m.Calls[j] = append(m.Calls[j], NormalizeAllele(allele))
	}

	return nil
}

// Gene ids also name the rows of the marker map, which is written through
// encoding/csv. That writer quotes fields holding a double quote, and the
// literal field \., so such ids could not be written verbatim.
func checkGeneID(gene string) error {
	if strings.Contains(gene, `"`) || gene == `\.` {
		return fmt.Errorf("gene id %s cannot be written to a marker map without quoting", gene)
	}

	return nil
}
