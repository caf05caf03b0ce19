// Package pav reads gene presence/absence variation (PAV) matrices and writes
// them out as GAPIT numeric genotype tables.
package pav

// Allele codes as written by the PAV caller and as expected by GAPIT. GAPIT
// reads 1 as heterozygous, so presence is recoded to the homozygous 2.
const (
	AbsentCode       = "0"
	PresentCode      = "1"
	GAPITPresentCode = "2"
)

// Matrix is a PAV matrix transposed into per-individual allele sequences.
type Matrix struct {
	// Genes in the order they first appear in the input
	Genes []string

	// Individuals in header order
	Individuals []string

	// Calls[i] holds the alleles of Individuals[i], aligned with Genes
	Calls [][]string

	// DuplicateGenes counts gene rows whose id had already been seen
	DuplicateGenes int
}

// NormalizeAllele recodes the PAV presence call to GAPIT's homozygous code.
// All other tokens pass through unchanged.
func NormalizeAllele(allele string) string {
	if allele == PresentCode {
		return GAPITPresentCode
	}

	return allele
}

// GeneSet returns the distinct gene ids of the matrix.
func (m *Matrix) GeneSet() map[string]struct{} {
	out := make(map[string]struct{}, len(m.Genes))
	for _, gene := range m.Genes {
		out[gene] = struct{}{}
	}

	return out
}
