package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/roster"
	"github.com/bigredeye/gradebook/internal/scorer"
	"github.com/bigredeye/gradebook/internal/store/memory"
)

const smallFixtureYaml = `
subjects:
  - code:    IKT205
    name:    Mobile development
    teacher: Hansen
  - code:    IKT206
    name:    DevOps
    teacher: Olsen

students:
  - first: Ola
    last:  Nordmann
    email: ola@example.com
    grades:
      - subject: IKT205
        grade:   C
        date:    01-09-2021 12:30
      - subject: IKT205
        grade:   a
        date:    15-12-2021 09:00
      - subject: IKT205
        grade:   B
  - first: Kari
    last:  Nordmann
    grades:
      - subject: IKT206
        grade:   F
        date:    20-12-2021 10:00
`

func TestFixtureParsing(t *testing.T) {
	fixture, err := Parse([]byte(smallFixtureYaml))
	if err != nil {
		t.Fatal("Failed to parse fixture:", err)
	}

	expected := &Fixture{
		Subjects: []Subject{
			{Code: "IKT205", Name: "Mobile development", Teacher: "Hansen"},
			{Code: "IKT206", Name: "DevOps", Teacher: "Olsen"},
		},
		Students: []Student{{
			First: "Ola",
			Last:  "Nordmann",
			Email: "ola@example.com",
			Grades: []Grade{
				{Subject: "IKT205", Grade: "C", Date: Date{time.Date(2021, 9, 1, 12, 30, 0, 0, time.UTC)}},
				{Subject: "IKT205", Grade: "a", Date: Date{time.Date(2021, 12, 15, 9, 0, 0, 0, time.UTC)}},
				{Subject: "IKT205", Grade: "B"},
			},
		}, {
			First: "Kari",
			Last:  "Nordmann",
			Grades: []Grade{
				{Subject: "IKT206", Grade: "F", Date: Date{time.Date(2021, 12, 20, 10, 0, 0, 0, time.UTC)}},
			},
		}},
	}
	if diff := cmp.Diff(expected, fixture); diff != "" {
		t.Fatalf("Fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidDate(t *testing.T) {
	_, err := Parse([]byte(`
students:
  - first: Ola
    last:  Nordmann
    grades:
      - subject: IKT205
        grade:   A
        date:    2021-09-01
`))
	if err == nil {
		t.Fatal("Expected an error for a malformed date")
	}
}

func TestLoad(t *testing.T) {
	fixture, err := Parse([]byte(smallFixtureYaml))
	if err != nil {
		t.Fatal(err)
	}

	store := memory.NewStore()
	loader := NewLoader(roster.NewService(store, zap.NewNop(), 4), grades.NewRecorder(store, zap.NewNop()), zap.NewNop())
	report, err := loader.Load(context.Background(), fixture)
	if err != nil {
		t.Fatal("Failed to load fixture:", err)
	}

	expected := &Report{
		Subjects: 2,
		Students: 2,
		Outcomes: map[grades.Outcome]int{
			grades.OutcomeAdded:     2,
			grades.OutcomeUpgraded:  1,
			grades.OutcomeUnchanged: 1,
		},
	}
	if diff := cmp.Diff(expected, report); diff != "" {
		t.Fatalf("Report mismatch (-want +got):\n%s", diff)
	}

	distribution, err := scorer.NewScorer(store, zap.NewNop(), 4).CalcDistributions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if distribution["IKT205"]["A"] != 1 || distribution["IKT206"]["F"] != 1 {
		t.Fatalf("Unexpected distribution %+v", distribution)
	}

	students, err := store.ListStudents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, student := range students {
		if student.FirstName != "Ola" {
			continue
		}
		records, err := store.ListGrades(context.Background(), student.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 {
			t.Fatalf("Unexpected records %+v", records)
		}
		if !records[0].DateAdded.Equal(time.Date(2021, 9, 1, 12, 30, 0, 0, time.UTC)) {
			t.Fatalf("Unexpected date added %v", records[0].DateAdded)
		}
		if records[0].DateModified == nil || !records[0].DateModified.Equal(time.Date(2021, 12, 15, 9, 0, 0, 0, time.UTC)) {
			t.Fatalf("Unexpected date modified %v", records[0].DateModified)
		}
	}
}

func TestLoadRejectsInvalidStudent(t *testing.T) {
	store := memory.NewStore()
	loader := NewLoader(roster.NewService(store, zap.NewNop(), 4), grades.NewRecorder(store, zap.NewNop()), zap.NewNop())
	_, err := loader.Load(context.Background(), &Fixture{Students: []Student{{First: "Ola"}}})
	if err == nil {
		t.Fatal("Expected a validation error")
	}
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(smallFixtureYaml), 0o600); err != nil {
		t.Fatal(err)
	}
	fromFile, err := Read(path)
	if err != nil {
		t.Fatal("Failed to read fixture:", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(smallFixtureYaml))
	}))
	defer srv.Close()

	fromURL, err := Read(srv.URL + "/fixture.yaml")
	if err != nil {
		t.Fatal("Failed to fetch fixture:", err)
	}
	if diff := cmp.Diff(fromFile, fromURL); diff != "" {
		t.Fatalf("Fixture mismatch (-file +url):\n%s", diff)
	}
}
