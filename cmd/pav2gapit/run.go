package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gapitprep"
	"github.com/carbocation/gapitprep/marker"
	"github.com/carbocation/gapitprep/pav"
	"github.com/carbocation/pfx"
)

type config struct {
	PAV string
	GFF string
	GD  string
	GM  string
}

func run(ctx context.Context, cfg config, client *storage.Client) error {
	log.Println("Reading genotypes from", cfg.PAV)
	matrix, err := readMatrix(ctx, cfg.PAV, client)
	if err != nil {
		return err
	}
	log.Printf("Read %d genes for %d individuals\n", len(matrix.Genes), len(matrix.Individuals))
	if matrix.DuplicateGenes > 0 {
		log.Println("Warning:", matrix.DuplicateGenes, "gene rows repeat an earlier gene id; every row is kept")
	}

	summary, err := pav.Summarize(matrix)
	if err != nil {
		return pfx.Err(err)
	}
	log.Println(summary)

	log.Println("Placing genes using", cfg.GFF)
	positions, report, err := resolvePositions(ctx, cfg.GFF, matrix.GeneSet(), client)
	if err != nil {
		return err
	}
	log.Printf("Kept %d of %d gene features\n", report.Kept, report.GeneFeatures)
	if report.Overwritten > 0 {
		log.Println("Warning:", report.Overwritten, "gene features repeat an earlier id; the last one seen was used")
	}

	// Every gene must be placed before any output is created
	markers, err := marker.Build(matrix.Genes, positions)
	if err != nil {
		return err
	}

	log.Println("Writing genotypes to", cfg.GD)
	if err := writeFile(cfg.GD, func(w io.Writer) error {
		return pav.WriteGenotypes(w, matrix)
	}); err != nil {
		return err
	}

	log.Println("Writing marker map to", cfg.GM)
	if err := writeFile(cfg.GM, func(w io.Writer) error {
		return marker.WriteMap(w, markers)
	}); err != nil {
		return err
	}

	log.Println("Done")

	return nil
}

func readMatrix(ctx context.Context, path string, client *storage.Client) (*pav.Matrix, error) {
	r, dt, err := gapitprep.OpenMaybeCompressed(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	log.Println("Detected", dt, "input")

	matrix, err := pav.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return matrix, nil
}

func resolvePositions(ctx context.Context, path string, genes map[string]struct{}, client *storage.Client) (map[string]marker.Position, marker.ResolveReport, error) {
	gff, err := gapitprep.OpenGFF(ctx, path, client)
	if err != nil {
		return nil, marker.ResolveReport{}, err
	}
	defer gff.Close()

	positions, report, err := marker.Resolve(gff, genes)
	if err != nil {
		return nil, report, fmt.Errorf("%s: %w", path, err)
	}

	return positions, report, nil
}

// writeFile creates or truncates path and hands a buffered writer to write.
// The file is closed exactly once, and the first error wins.
func writeFile(path string, write func(io.Writer) error) (err error) {
	expanded, err := gapitprep.ExpandHome(path)
	if err != nil {
		return err
	}

	f, err := os.Create(expanded)
	if err != nil {
		return pfx.Err(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pfx.Err(cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
