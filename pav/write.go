package pav

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

const (
	// Delim is the string used to delimit the output
	Delim = "\t"

	// TaxaHeader labels the individual column of a GAPIT genotype table
	TaxaHeader = "taxa"
)

// WriteGenotypes writes m as a GAPIT numeric genotype (GD) table: a header of
// "taxa" and the genes, then one row per individual. Tokens are written
// verbatim, without CSV quoting.
func WriteGenotypes(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, TaxaHeader+joinPrefixed(m.Genes)); err != nil {
		return pfx.Err(err)
	}

	for i, individual := range m.Individuals {
		if x, y := len(m.Calls[i]), len(m.Genes); x != y {
			return pfx.Err(fmt.Errorf("individual %s has %d alleles for %d genes", individual, x, y))
		}

		if _, err := fmt.Fprintln(bw, individual+joinPrefixed(m.Calls[i])); err != nil {
			return pfx.Err(err)
		}
	}

	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// joinPrefixed returns fields joined by Delim, with a leading Delim when
// fields is non-empty.
func joinPrefixed(fields []string) string {
	if len(fields) == 0 {
		return ""
	}

	return Delim + strings.Join(fields, Delim)
}
