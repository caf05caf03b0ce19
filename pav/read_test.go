package pav

import (
	"strings"
	"testing"
)

const smallPAV = `Individual	AB-01	AB-02	BR-01
GlymaLee.01G000100.1.p	1	0	1
GlymaLee.02G000200.1.p	0	0	1
GlymaLee.01G000300.1.p	1	1	0
`

func TestRead(t *testing.T) {
	m, err := Read(strings.NewReader(smallPAV))
	if err != nil {
		t.Fatal(err)
	}

	if x := strings.Join(m.Individuals, ","); x != "AB-01,AB-02,BR-01" {
		t.Errorf("Unexpected individuals %s", x)
	}

	// First-appearance order, not sorted
	if x := strings.Join(m.Genes, ","); x != "GlymaLee.01G000100.1.p,GlymaLee.02G000200.1.p,GlymaLee.01G000300.1.p" {
		t.Errorf("Unexpected genes %s", x)
	}

	for i, expected := range []string{"2,0,2", "0,0,2", "2,2,0"} {
		if x := strings.Join(m.Calls[i], ","); x != expected {
			t.Errorf("%s: expected %s, got %s", m.Individuals[i], expected, x)
		}
	}

	if m.DuplicateGenes != 0 {
		t.Errorf("Expected no duplicate genes, got %d", m.DuplicateGenes)
	}
}

func TestNormalizeAllele(t *testing.T) {
	for _, v := range []struct {
		In  string
		Out string
	}{
		{"1", "2"},
		{"0", "0"},
		{"2", "2"},
		{"NA", "NA"},
		{"-1", "-1"},
		{"11", "11"},
	} {
		if got := NormalizeAllele(v.In); got != v.Out {
			t.Errorf("%q: expected %q, got %q", v.In, v.Out, got)
		}
	}
}

func TestReadWhitespaceAndBlankLines(t *testing.T) {
	input := "Individual  A   B\n\ng1 1  0\n   \ng2\t0\t1"
	m, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Genes) != 2 || m.Genes[0] != "g1" || m.Genes[1] != "g2" {
		t.Fatalf("Unexpected genes %v", m.Genes)
	}
	if x := strings.Join(m.Calls[0], ","); x != "2,0" {
		t.Errorf("A: got %s", x)
	}
	if x := strings.Join(m.Calls[1], ","); x != "0,2" {
		t.Errorf("B: got %s", x)
	}
}

func TestReadDuplicateGenes(t *testing.T) {
	m, err := Read(strings.NewReader("Individual A\ng1 1\ng1 0\n"))
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Genes) != 2 {
		t.Errorf("Duplicate gene rows should be kept, got %v", m.Genes)
	}
	if m.DuplicateGenes != 1 {
		t.Errorf("Expected 1 duplicate, got %d", m.DuplicateGenes)
	}
	if len(m.GeneSet()) != 1 {
		t.Errorf("Expected 1 distinct gene, got %d", len(m.GeneSet()))
	}
}

func TestReadErrors(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Input    string
		Contains string
	}{
		{"empty", "", "empty"},
		{"blank", "\n\n", "empty"},
		{"too few alleles", "Individual A B\ng1 1\n", "g1 has 1 alleles"},
		{"too many alleles", "Individual A B\ng1 1 0\ng2 1 0 1\n", "line 3"},
		{"duplicate individual", "Individual A B A\ng1 1 0 1\n", "individual A"},
		{"quoted gene id", "Individual A\ng\"1 1\n", "line 2"},
		{"escaped dot gene id", "Individual A\n\\. 1\n", "quoting"},
	} {
		_, err := Read(strings.NewReader(v.Input))
		if err == nil {
			t.Errorf("%s: expected an error", v.Name)
			continue
		}
		if !strings.Contains(err.Error(), v.Contains) {
			t.Errorf("%s: expected error to mention %q, got %v", v.Name, v.Contains, err)
		}
	}
}
