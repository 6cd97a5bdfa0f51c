package main

import (
	"github.com/spf13/cobra"

	lf "github.com/bigredeye/gradebook/internal/logfield"
)

func makeDeleteStudentCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Delete a student and their grades",
		RunE: func(cmd *cobra.Command, args []string) error {
			gbk, err := newClient()
			if err != nil {
				return err
			}
			if err := gbk.DeleteStudent(id); err != nil {
				return err
			}
			log.Info("Deleted student", lf.StudentID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Student id")
	check(cmd.MarkFlagRequired("id"))

	return cmd
}

func makeDeleteSubjectCommand() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Delete a subject and every grade for its course code",
		RunE: func(cmd *cobra.Command, args []string) error {
			gbk, err := newClient()
			if err != nil {
				return err
			}
			if err := gbk.DeleteSubject(id); err != nil {
				return err
			}
			log.Info("Deleted subject", lf.SubjectID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Subject id")
	check(cmd.MarkFlagRequired("id"))

	return cmd
}
