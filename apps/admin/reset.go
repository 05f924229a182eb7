package main

import (
	"context"
	"fmt"

	"github.com/trezcool/classbook/core/school"
)

// reset deletes the snapshots; the next load seeds them again from the fixtures.
func (cli *commandLine) reset(ctx context.Context) error {
	if err := school.Reset(ctx, cli.store); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "snapshots deleted")
	return nil
}
