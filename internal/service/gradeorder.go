package service

import (
	"sort"
	"strings"

	"github.com/oakfield-primary/portal-api/internal/models"
)

// gradeSequence is the school's fixed grade progression, reception first.
var gradeSequence = map[string]int{
	"R": 0, "1": 1, "2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7,
}

// NormalizeGrade strips the optional literal "Grade " prefix and
// surrounding whitespace. The prefix match is case-sensitive; the
// remainder is compared as-is.
func NormalizeGrade(grade string) string {
	grade = strings.TrimSpace(grade)
	grade = strings.TrimPrefix(grade, "Grade ")
	return strings.TrimSpace(grade)
}

// gradeRank orders grades by the fixed sequence. Grades outside the
// sequence sort after all known grades, among themselves
// lexicographically; an empty grade sorts last of all.
func gradeRank(grade string) (int, bool) {
	rank, ok := gradeSequence[NormalizeGrade(grade)]
	return rank, ok
}

// SortStudentsByGrade orders students reception-first. The sort is
// stable so equal grades keep their upstream order.
func SortStudentsByGrade(students []models.Student) {
	sort.SliceStable(students, func(i, j int) bool {
		return gradeLess(students[i].Grade, students[j].Grade)
	})
}

func gradeLess(a, b string) bool {
	na, nb := NormalizeGrade(a), NormalizeGrade(b)
	ra, oka := gradeRank(a)
	rb, okb := gradeRank(b)
	switch {
	case oka && okb:
		return ra < rb
	case oka:
		return true
	case okb:
		return false
	case na == "":
		return false
	case nb == "":
		return true
	default:
		return na < nb
	}
}

// EligibleForTrip reports whether a student's grade matches any of the
// trip's eligible grades after normalization on both sides.
func EligibleForTrip(studentGrade string, eligibleGrades []string) bool {
	grade := NormalizeGrade(studentGrade)
	for _, eligible := range eligibleGrades {
		if grade == NormalizeGrade(eligible) {
			return true
		}
	}
	return false
}
