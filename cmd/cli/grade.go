package main

import (
	"github.com/spf13/cobra"

	lf "github.com/bigredeye/gradebook/internal/logfield"
)

func makeGradeCommand() *cobra.Command {
	var student string
	var subject string
	var grade string

	cmd := &cobra.Command{
		Use:   "grade",
		Short: "Record a grade, keeping the better one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return recordGrade(student, subject, grade)
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student id")
	cmd.Flags().StringVar(&subject, "subject", "", "Course code")
	cmd.Flags().StringVar(&grade, "grade", "", "Letter grade, A to F")
	check(cmd.MarkFlagRequired("student"))
	check(cmd.MarkFlagRequired("subject"))
	check(cmd.MarkFlagRequired("grade"))

	return cmd
}

func recordGrade(student, subject, grade string) error {
	gbk, err := newClient()
	if err != nil {
		return err
	}

	outcome, err := gbk.RecordGrade(student, subject, grade)
	if err != nil {
		return err
	}

	log.Info("Recorded grade",
		lf.StudentID(student),
		lf.SubjectCode(subject),
		lf.Grade(grade),
		lf.Outcome(outcome),
	)
	return nil
}
