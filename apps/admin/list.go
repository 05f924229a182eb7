package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/student"
)

func (cli *commandLine) students(ctx context.Context, sel core.Selection, asJSON bool) error {
	sch, err := cli.load(ctx)
	if err != nil {
		return err
	}
	views := sch.Students.Views(sch.Students.Filter(sel))
	if asJSON || !cli.tty {
		return cli.printJSON(views)
	}
	return cli.printStudents(views)
}

func (cli *commandLine) relationships(ctx context.Context, sel core.Selection, asJSON bool) error {
	sch, err := cli.load(ctx)
	if err != nil {
		return err
	}
	views := sch.Relationships.Views(sch.Relationships.FilterView(sel))
	if asJSON || !cli.tty {
		return cli.printJSON(views)
	}
	return cli.printRelationships(views)
}

func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (cli *commandLine) printStudents(views []student.View) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRA\tNAME\tDEGREE\tCLASS")
	for _, v := range views {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", v.ID, v.RA, v.Name, v.DegreeName, v.ClassName)
	}
	return w.Flush()
}

// printRelationships prints one line per degree assignment.
func (cli *commandLine) printRelationships(views []relationship.View) error {
	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEACHER\tSUBJECT\tDEGREE\tCLASSES")
	for _, v := range views {
		for _, dv := range v.Degrees {
			classes := make([]string, len(dv.Classes))
			for i, cv := range dv.Classes {
				classes[i] = cv.ClassName
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", v.ID, v.TeacherName, v.MatterName, dv.DegreeName, strings.Join(classes, ", "))
		}
	}
	return w.Flush()
}
