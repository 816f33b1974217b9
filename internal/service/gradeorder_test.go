package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakfield-primary/portal-api/internal/models"
)

func gradesOf(students []models.Student) []string {
	grades := make([]string, len(students))
	for i, s := range students {
		grades[i] = s.Grade
	}
	return grades
}

func studentsWithGrades(grades ...string) []models.Student {
	students := make([]models.Student, len(grades))
	for i, g := range grades {
		students[i] = models.Student{StudentID: g, Grade: g}
	}
	return students
}

func TestSortStudentsByGrade(t *testing.T) {
	students := studentsWithGrades("3", "R", "1")
	SortStudentsByGrade(students)
	assert.Equal(t, []string{"R", "1", "3"}, gradesOf(students))
}

func TestSortStudentsByGradeFullSequence(t *testing.T) {
	students := studentsWithGrades("7", "2", "R", "5", "1")
	SortStudentsByGrade(students)
	assert.Equal(t, []string{"R", "1", "2", "5", "7"}, gradesOf(students))
}

func TestSortStudentsByGradeUnknownAfterKnown(t *testing.T) {
	students := studentsWithGrades("9", "2", "8", "R")
	SortStudentsByGrade(students)
	assert.Equal(t, []string{"R", "2", "8", "9"}, gradesOf(students))
}

func TestSortStudentsByGradeEmptyLast(t *testing.T) {
	students := studentsWithGrades("", "8", "3")
	SortStudentsByGrade(students)
	assert.Equal(t, []string{"3", "8", ""}, gradesOf(students))
}

func TestSortStudentsByGradePrefixedGrades(t *testing.T) {
	students := studentsWithGrades("Grade 4", "Grade R", "2")
	SortStudentsByGrade(students)
	assert.Equal(t, []string{"Grade R", "2", "Grade 4"}, gradesOf(students))
}

func TestNormalizeGrade(t *testing.T) {
	assert.Equal(t, "2", NormalizeGrade("Grade 2"))
	assert.Equal(t, "R", NormalizeGrade(" Grade R "))
	assert.Equal(t, "2", NormalizeGrade("2"))
	// Prefix strip is case-sensitive.
	assert.Equal(t, "grade 2", NormalizeGrade("grade 2"))
	assert.Equal(t, "", NormalizeGrade("  "))
}

func TestEligibleForTrip(t *testing.T) {
	assert.True(t, EligibleForTrip("Grade 2", []string{"2"}))
	assert.True(t, EligibleForTrip("2", []string{"Grade 2"}))
	assert.True(t, EligibleForTrip("R", []string{"1", "R"}))
	assert.False(t, EligibleForTrip("3", []string{"1", "2"}))
	assert.False(t, EligibleForTrip("", []string{"1"}))
	assert.False(t, EligibleForTrip("2", nil))
}
