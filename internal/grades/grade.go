package grades

import "strings"

type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
	LetterE Letter = "E"
	LetterF Letter = "F"
)

// Letters lists every valid grade, best first.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD, LetterE, LetterF}

var ranks = map[Letter]int{
	LetterA: 5,
	LetterB: 4,
	LetterC: 3,
	LetterD: 2,
	LetterE: 1,
	LetterF: 0,
}

const unknownRank = -1

func Canonicalize(grade string) Letter {
	return Letter(strings.ToUpper(grade))
}

func Parse(grade string) (Letter, bool) {
	letter := Canonicalize(grade)
	_, ok := ranks[letter]
	return letter, ok
}

// Rank orders letters from F=0 to A=5. Anything else ranks below F.
func Rank(grade string) int {
	rank, ok := ranks[Canonicalize(grade)]
	if !ok {
		return unknownRank
	}
	return rank
}
