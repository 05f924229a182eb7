package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/student"
)

// export writes the selected students to an XLSX workbook at path.
func (cli *commandLine) export(ctx context.Context, path string, sel core.Selection) error {
	sch, err := cli.load(ctx)
	if err != nil {
		return err
	}
	views := sch.Students.Views(sch.Students.Filter(sel))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating export file")
	}
	if err = student.WriteXLSX(f, views); err != nil {
		f.Close()
		return errors.Wrap(err, "exporting students")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "closing export file")
	}
	fmt.Fprintf(cli.out, "exported %d students to %s\n", len(views), path)
	return nil
}
