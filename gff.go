package gapitprep

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// Lines longer than this cannot be read.
const maxGFFLineBytes = 16 * 1024 * 1024

// FASTADirective marks the start of embedded sequence in a GFF3 file.
const FASTADirective = "##FASTA"

// GFF iterates over the feature rows of a GFF-like annotation. Fields are
// split on any run of whitespace. Blank lines and lines starting with '#' are
// skipped. A ##FASTA directive ends the feature section, and nothing after it
// is read.
type GFF struct {
	path    string
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
	done    bool
	err     error
}

// OpenGFF opens a local or gs:// annotation file for reading.
func OpenGFF(ctx context.Context, path string, client *storage.Client) (*GFF, error) {
	f, err := OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}

	g := NewGFF(f)
	g.path = path
	g.closer = f

	return g, nil
}

// NewGFF reads GFF rows from r. Close is a nop for a GFF made this way.
func NewGFF(r io.Reader) *GFF {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxGFFLineBytes)

	return &GFF{
		scanner: scanner,
	}
}

func (g *GFF) Close() error {
	if g.closer == nil {
		return nil
	}

	return g.closer.Close()
}

func (g *GFF) Err() error {
	if g.err != nil {
		return g.err
	}

	return g.scanner.Err()
}

// Read returns the next feature row, or nil once the input is exhausted or an
// error occurs. Check Err after Read returns nil.
func (g *GFF) Read() *GFFRow {
	if g.err != nil || g.done {
		return nil
	}

	for g.scanner.Scan() {
		g.line++

		data := g.scanner.Text()
		if strings.HasPrefix(data, FASTADirective) {
			g.done = true
			return nil
		}
		if strings.HasPrefix(data, "#") {
			continue
		}

		cols := strings.Fields(data)
		if len(cols) == 0 {
			continue
		}

		if len(cols) < Attributes+1 {
			g.err = fmt.Errorf("%sGFF line %d has %d columns, expected at least %d: %q", g.pathPrefix(), g.line, len(cols), Attributes+1, data)
			return nil
		}

		// Attribute values may themselves contain whitespace
		return &GFFRow{
			Line:       g.line,
			SeqID:      cols[SeqID],
			Source:     cols[Source],
			Feature:    cols[FeatureType],
			Start:      cols[Start],
			End:        cols[End],
			Score:      cols[Score],
			Strand:     cols[Strand],
			Phase:      cols[Phase],
			Attributes: strings.Join(cols[Attributes:], " "),
		}
	}

	return nil
}

func (g *GFF) pathPrefix() string {
	if g.path == "" {
		return ""
	}

	return g.path + ": "
}
