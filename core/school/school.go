package school

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/refdata"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/student"
	"github.com/trezcool/classbook/fixtures"
)

// School bundles the reference tables and both registries.
type School struct {
	Ref           *refdata.Store
	Students      *student.Service
	Relationships *relationship.Service
}

// Load builds a School from the fixtures and the snapshot store.
// A stored snapshot wins over its fixture; on first run the fixture is written back as the seed.
// Any failure is returned as a *core.LoadError and nothing is kept.
func Load(ctx context.Context, fsys fs.FS, store core.SnapshotStore, logger core.Logger, opts ...student.Option) (*School, error) {
	ref, err := LoadRef(fsys)
	if err != nil {
		return nil, err
	}

	var students []student.Student
	seedStudents, err := readCollection(ctx, fsys, store, core.StudentsKey, &students)
	if err != nil {
		return nil, err
	}
	if err = core.Validate.Var(students, "dive"); err != nil {
		return nil, core.NewLoadError(core.StudentsKey, err)
	}

	var rels []relationship.Relationship
	seedRels, err := readCollection(ctx, fsys, store, core.RelationshipsKey, &rels)
	if err != nil {
		return nil, err
	}

	if seedStudents {
		if err = core.WriteSnapshot(ctx, store, core.StudentsKey, students); err != nil {
			return nil, core.NewLoadError(core.StudentsKey, err)
		}
	}
	if seedRels {
		if err = core.WriteSnapshot(ctx, store, core.RelationshipsKey, rels); err != nil {
			return nil, core.NewLoadError(core.RelationshipsKey, err)
		}
	}

	logger.Info(fmt.Sprintf("loaded %d students (%s) and %d relationships (%s)",
		len(students), origin(seedStudents), len(rels), origin(seedRels)))

	return &School{
		Ref:           ref,
		Students:      student.NewService(students, ref, store, logger, opts...),
		Relationships: relationship.NewService(rels, ref, store, logger),
	}, nil
}

// LoadRef reads the four reference fixtures.
func LoadRef(fsys fs.FS) (*refdata.Store, error) {
	var (
		tables  refdata.Tables
		classes refdata.ClassList
	)
	for _, f := range []struct {
		name string
		v    interface{}
	}{
		{fixtures.Degrees, &tables.Degrees},
		{fixtures.Classes, &classes},
		{fixtures.Teachers, &tables.Teachers},
		{fixtures.Matters, &tables.Matters},
	} {
		if err := readFixture(fsys, f.name, f.v); err != nil {
			return nil, err
		}
	}
	tables.Classes = classes.Classes

	ref, err := refdata.NewStore(tables)
	if err != nil {
		return nil, core.NewLoadError("reference data", err)
	}
	return ref, nil
}

// Reset drops every snapshot so that the next Load starts again from the fixtures.
func Reset(ctx context.Context, store core.SnapshotStore) error {
	for _, key := range core.SnapshotKeys {
		if err := store.Delete(ctx, key); err != nil {
			return errors.Wrapf(err, "deleting snapshot %q", key)
		}
	}
	return nil
}

// readCollection reads the snapshot under key, falling back to its fixture.
// seed reports that the fixture was used.
func readCollection(ctx context.Context, fsys fs.FS, store core.SnapshotStore, key string, v interface{}) (seed bool, err error) {
	found, err := core.ReadSnapshot(ctx, store, key, v)
	if err != nil {
		return false, core.NewLoadError(key, err)
	}
	if found {
		return false, nil
	}
	name, _ := fixtures.SeedFile(key)
	if err = readFixture(fsys, name, v); err != nil {
		return false, err
	}
	return true, nil
}

func readFixture(fsys fs.FS, name string, v interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return core.NewLoadError(name, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return core.NewLoadError(name, err)
	}
	return nil
}

func origin(seed bool) string {
	if seed {
		return "fixture"
	}
	return "snapshot"
}
