package main

import (
	"context"
	"fmt"

	"github.com/trezcool/classbook/core/relationship"
)

// assign records that a teacher teaches a subject to a class.
func (cli *commandLine) assign(ctx context.Context, a relationship.Assignment) error {
	sch, err := cli.load(ctx)
	if err != nil {
		return err
	}
	outcome, rel, err := sch.Relationships.Upsert(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (relationship %d)\n", outcome.Message(), rel.ID)
	return nil
}
