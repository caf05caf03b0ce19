package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	testPAV = "Individual\tAB-01\tBR-02\n" +
		"GlymaLee.01G000100.1.p\t1\t0\n" +
		"GlymaLee.10G000200.1.p\t0\t1\n"

	testGFF = "##gff-version 3\n" +
		"Gm01\tphytozomev13\tgene\t100\t200\t.\t+\t.\tID=GlymaLee.01G000100.1.v1.1;Name=GlymaLee.01G000100\n" +
		"Gm01\tphytozomev13\tmRNA\t100\t200\t.\t+\t.\tID=GlymaLee.01G000100.1.v1.1.m;Parent=GlymaLee.01G000100.1.v1.1\n" +
		"Gm10\tphytozomev13\tgene\t200\t100\t.\t-\t.\tID=GlymaLee.10G000200.1.v1.1;Name=GlymaLee.10G000200\n" +
		"Gm02\tphytozomev13\tgene\t5\t9\t.\t-\t.\tID=GlymaLee.02G000900.1.v1.1;Name=GlymaLee.02G000900\n"
)

func writeInputs(t *testing.T, pav, gff string) config {
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(pav)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	cfg := config{
		PAV: filepath.Join(dir, "NBS_PAV.txt.gz"),
		GFF: filepath.Join(dir, "Lee.pan.v1.renamed.gff"),
		GD:  filepath.Join(dir, "NLR_PAV_GD.txt"),
		GM:  filepath.Join(dir, "NLR_PAV_GM.txt"),
	}

	if err := os.WriteFile(cfg.PAV, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.GFF, []byte(gff), 0644); err != nil {
		t.Fatal(err)
	}

	return cfg
}

func TestRun(t *testing.T) {
	cfg := writeInputs(t, testPAV, testGFF)

	if err := run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}

	gd, err := os.ReadFile(cfg.GD)
	if err != nil {
		t.Fatal(err)
	}
	expectedGD := "taxa\tGlymaLee.01G000100.1.p\tGlymaLee.10G000200.1.p\n" +
		"AB-01\t2\t0\n" +
		"BR-02\t0\t2\n"
	if string(gd) != expectedGD {
		t.Errorf("GD expected:\n%s\nGot:\n%s", expectedGD, gd)
	}

	gm, err := os.ReadFile(cfg.GM)
	if err != nil {
		t.Fatal(err)
	}
	expectedGM := "Name\tChromosome\tPosition\n" +
		"GlymaLee.01G000100.1.p\t1\t150\n" +
		"GlymaLee.10G000200.1.p\t10\t150\n"
	if string(gm) != expectedGM {
		t.Errorf("GM expected:\n%s\nGot:\n%s", expectedGM, gm)
	}

	if x := strings.Count(string(gd), "\n"); x != 3 {
		t.Errorf("Expected 3 GD lines, got %d", x)
	}
	if x := strings.Count(string(gm), "\n"); x != 3 {
		t.Errorf("Expected 3 GM lines, got %d", x)
	}
}

// A gene that cannot be placed aborts the run before either output exists.
func TestRunMissingPosition(t *testing.T) {
	pav := testPAV + "GlymaLee.03G000300.1.p\t1\t1\n"
	cfg := writeInputs(t, pav, testGFF)

	err := run(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), "GlymaLee.03G000300.1.p") {
		t.Errorf("Expected the error to name the gene, got %v", err)
	}

	for _, path := range []string{cfg.GD, cfg.GM} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Expected %s not to be written", path)
		}
	}
}

func TestRunUnrecognizedChromosome(t *testing.T) {
	gff := strings.Replace(testGFF, "Gm10\t", "chrX\t", 1)
	cfg := writeInputs(t, testPAV, gff)

	err := run(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "chrX") {
		t.Fatalf("Expected an error naming chrX, got %v", err)
	}
}

func TestRunMalformedAnnotation(t *testing.T) {
	gff := strings.Replace(testGFF, "ID=GlymaLee.02G000900.1.v1.1;Name=GlymaLee.02G000900", "Name=GlymaLee.02G000900", 1)
	cfg := writeInputs(t, testPAV, gff)

	err := run(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "ID=") {
		t.Fatalf("Expected an error about the missing ID attribute, got %v", err)
	}
}

func TestRunUncompressedInput(t *testing.T) {
	cfg := writeInputs(t, testPAV, testGFF)
	if err := os.WriteFile(cfg.PAV, []byte(testPAV), 0644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.GM); err != nil {
		t.Error(err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale content that is longer\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "fresh\n")
		return err
	}); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "fresh\n" {
		t.Errorf("Expected the file to be truncated and rewritten, got %q", got)
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()

	errBoom := errors.New("boom")
	path := filepath.Join(dir, "out.txt")
	err := writeFile(path, func(w io.Writer) error {
		return errBoom
	})
	if !errors.Is(err, errBoom) || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected the write error prefixed with %s, got %v", path, err)
	}

	missing := filepath.Join(dir, "no-such-dir", "out.txt")
	if err := writeFile(missing, func(w io.Writer) error { return nil }); err == nil {
		t.Error("Expected an error creating a file in a missing directory")
	}
}
