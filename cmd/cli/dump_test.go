package main

import (
	"bytes"
	"testing"

	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/scorer"
)

func TestWriteDistribution(t *testing.T) {
	first := scorer.NewHistogram()
	first["A"] = 2
	second := scorer.NewHistogram()
	second["F"] = 1

	var buf bytes.Buffer
	writeDistribution(&buf, scorer.Distribution{"IKT206": second, "IKT205": first})

	expected := "code\tA\tB\tC\tD\tE\tF\n" +
		"IKT205\t2\t0\t0\t0\t0\t0\n" +
		"IKT206\t0\t0\t0\t0\t0\t1\n"
	if buf.String() != expected {
		t.Fatalf("Unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestWriteStudents(t *testing.T) {
	var buf bytes.Buffer
	writeStudents(&buf, []models.Student{{ID: "s1", FirstName: "Ola", LastName: "Nordmann", Email: "ola@example.com"}})

	expected := "s1\tNordmann, Ola\tola@example.com\n"
	if buf.String() != expected {
		t.Fatalf("Unexpected output %q", buf.String())
	}
}
