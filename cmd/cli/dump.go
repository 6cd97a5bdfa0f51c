package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigredeye/gradebook/internal/grades"
	"github.com/bigredeye/gradebook/internal/models"
	"github.com/bigredeye/gradebook/internal/scorer"
)

func makeDumpDistributionsCommand() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "distributions",
		Short: "Dump grade distributions per course code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpDistributions(subject)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Dump only this course code")

	return cmd
}

func dumpDistributions(subject string) error {
	gbk, err := newClient()
	if err != nil {
		return err
	}

	var distribution scorer.Distribution
	if subject != "" {
		histogram, err := gbk.LoadSubjectDistribution(subject)
		if err != nil {
			return err
		}
		distribution = scorer.Distribution{subject: histogram}
	} else {
		distribution, err = gbk.LoadDistributions()
		if err != nil {
			return err
		}
	}

	writeDistribution(os.Stdout, distribution)
	return nil
}

func writeDistribution(w io.Writer, distribution scorer.Distribution) {
	fmt.Fprint(w, "code")
	for _, letter := range grades.Letters {
		fmt.Fprintf(w, "\t%s", letter)
	}
	fmt.Fprintln(w)

	for _, code := range distribution.Codes() {
		fmt.Fprint(w, code)
		histogram := distribution[code]
		for _, letter := range grades.Letters {
			fmt.Fprintf(w, "\t%d", histogram[letter])
		}
		fmt.Fprintln(w)
	}
}

func makeDumpStudentsCommand() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Dump students",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpStudents(query)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Name substring")

	return cmd
}

func dumpStudents(query string) error {
	gbk, err := newClient()
	if err != nil {
		return err
	}

	students, err := gbk.ListStudents(query)
	if err != nil {
		return err
	}

	writeStudents(os.Stdout, students)
	return nil
}

func writeStudents(w io.Writer, students []models.Student) {
	for _, student := range students {
		fmt.Fprintf(w, "%s\t%s, %s\t%s\n", student.ID, student.LastName, student.FirstName, student.Email)
	}
}
