package main

import (
	"context"
	"fmt"
)

// generate appends count random students.
func (cli *commandLine) generate(ctx context.Context, count int) error {
	sch, err := cli.load(ctx)
	if err != nil {
		return err
	}
	generated, err := sch.Students.BulkGenerate(ctx, count)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "generated %d students (ids %d-%d)\n",
		len(generated), generated[0].ID, generated[len(generated)-1].ID)
	return nil
}
