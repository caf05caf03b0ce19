// pav2gapit converts a gene presence/absence (PAV) matrix and the gene models
// it was called against into the numeric genotype (GD) and marker map (GM)
// tables that GAPIT takes as input.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gapitprep"
	_ "github.com/carbocation/gapitprep/compileinfoprint"
)

const (
	DefaultPAV = "data/NBS_PAV.txt.gz"
	DefaultGFF = "data/Lee.pan.v1.renamed.gff"
	DefaultGD  = "data/NLR_PAV_GD.txt"
	DefaultGM  = "data/NLR_PAV_GM.txt"
)

func main() {
	var cfg config
	flag.StringVar(&cfg.PAV, "pav", DefaultPAV, "Path to the PAV matrix (gzip, xz, bzip2, zip or plain text). Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&cfg.GFF, "gff", DefaultGFF, "Path to the gene model annotation (GFF). Optionally, may be a google storage URL (gs://)")
	flag.StringVar(&cfg.GD, "gd", DefaultGD, "Path to the GAPIT genotype table to write.")
	flag.StringVar(&cfg.GM, "gm", DefaultGM, "Path to the GAPIT marker map to write.")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `pav2gapit
Consumes a gene presence/absence matrix and a GFF of the pangenome gene models, and writes GAPIT inputs.
  1. Presence calls of 1 become 2, since GAPIT reads 1 as heterozygous.
  2. Each gene is placed at the midpoint of its gene model.
  3. GmNN chromosomes become NN, sc* scaffolds become 21 and Uwa* pangenome sequences become 22.`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()

	var client *storage.Client
	if gapitprep.IsGoogleStoragePath(cfg.PAV) || gapitprep.IsGoogleStoragePath(cfg.GFF) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()
	}

	if err := run(ctx, cfg, client); err != nil {
		log.Fatalln(err)
	}
}
