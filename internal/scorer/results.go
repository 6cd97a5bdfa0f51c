package scorer

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/models"
)

// Histogram counts students per letter. A complete histogram has all six letters.
type Histogram map[grades.Letter]int

func NewHistogram() Histogram {
	histogram := make(Histogram, len(grades.Letters))
	for _, letter := range grades.Letters {
		histogram[letter] = 0
	}
	return histogram
}

func (h Histogram) Total() int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// Distribution maps a course code to its histogram.
type Distribution map[string]Histogram

func (d Distribution) Codes() []string {
	codes := maps.Keys(d)
	slices.Sort(codes)
	return codes
}

type StudentGrades struct {
	Student models.Student
	Grades  []models.GradeRecord
}
