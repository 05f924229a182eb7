package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/student"
	"github.com/trezcool/classbook/fixtures"
)

// diff prints a unified diff between the fixture seeding key and the stored snapshot.
// Both sides are decoded and re-encoded first, so legacy field spellings do not show up as changes.
func (cli *commandLine) diff(ctx context.Context, key string) error {
	name, ok := fixtures.SeedFile(key)
	if !ok {
		return fmt.Errorf("unknown snapshot key %q", key)
	}

	snapshot, found, err := canonical(key, func(v interface{}) (bool, error) {
		return core.ReadSnapshot(ctx, cli.store, key, v)
	})
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(cli.out, "no snapshot stored under %q\n", key)
		return nil
	}

	fixture, _, err := canonical(key, func(v interface{}) (bool, error) {
		data, err := fs.ReadFile(cli.fixtures, name)
		if err != nil {
			return false, errors.Wrapf(err, "reading %s", name)
		}
		return true, errors.Wrapf(json.Unmarshal(data, v), "decoding %s", name)
	})
	if err != nil {
		return err
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(fixture),
		B:        difflib.SplitLines(snapshot),
		FromFile: "fixtures/" + name,
		ToFile:   "snapshot/" + key,
		Context:  2,
	})
	if err != nil {
		return errors.Wrap(err, "diffing")
	}
	if text == "" {
		fmt.Fprintf(cli.out, "snapshot %q matches %s\n", key, name)
		return nil
	}
	fmt.Fprint(cli.out, text)
	return nil
}

// canonical decodes a collection with read and re-encodes it indented.
func canonical(key string, read func(v interface{}) (bool, error)) (string, bool, error) {
	var v interface{}
	switch key {
	case core.StudentsKey:
		v = new([]student.Student)
	default:
		v = new([]relationship.Relationship)
	}
	found, err := read(v)
	if err != nil || !found {
		return "", found, err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", false, errors.Wrapf(err, "encoding %s", key)
	}
	return string(data) + "\n", true, nil
}
