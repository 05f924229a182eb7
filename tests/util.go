package testutil

import (
	"context"
	"io/ioutil"
	"log"
	"math/rand"
	"testing"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/refdata"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/student"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage/database/inmem"
)

// Logger discards everything and never reports to rollbar.
func Logger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), &core.Config{Debug: true, TestMode: true})
}

// RefTables are small reference tables: 3 degrees, 3 classes (A, B, C), 2 teachers, 2 matters.
func RefTables() refdata.Tables {
	return refdata.Tables{
		Degrees:  []refdata.Degree{{ID: 1, Name: "1st grade"}, {ID: 2, Name: "2nd grade"}, {ID: 5, Name: "5th grade"}},
		Classes:  []refdata.Class{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Teachers: []refdata.Teacher{{ID: 1, Name: "Ada Lovelace"}, {ID: 2, Name: "Alan Turing"}},
		Matters:  []refdata.Matter{{ID: 1, Name: "Maths"}, {ID: 2, Name: "History"}},
	}
}

func RefStore(t *testing.T) *refdata.Store {
	store, err := refdata.NewStore(RefTables())
	if err != nil {
		t.Fatalf("RefStore() failed: %v", err)
	}
	return store
}

func SnapshotStore() core.SnapshotStore {
	return inmemdb.NewSnapshotStore()
}

func StudentService(t *testing.T, store core.SnapshotStore, students ...student.Student) *student.Service {
	return student.NewService(students, RefStore(t), store, Logger(), student.WithRand(rand.New(rand.NewSource(42))))
}

func RelationshipService(t *testing.T, store core.SnapshotStore, rels ...relationship.Relationship) *relationship.Service {
	return relationship.NewService(rels, RefStore(t), store, Logger())
}

// ReadStudents returns the persisted students snapshot.
func ReadStudents(t *testing.T, store core.SnapshotStore) []student.Student {
	var students []student.Student
	if _, err := core.ReadSnapshot(context.Background(), store, core.StudentsKey, &students); err != nil {
		t.Fatalf("ReadStudents() failed: %v", err)
	}
	return students
}

// ReadRelationships returns the persisted relationships snapshot.
func ReadRelationships(t *testing.T, store core.SnapshotStore) []relationship.Relationship {
	var rels []relationship.Relationship
	if _, err := core.ReadSnapshot(context.Background(), store, core.RelationshipsKey, &rels); err != nil {
		t.Fatalf("ReadRelationships() failed: %v", err)
	}
	return rels
}

// FailingStore reads like an empty store and refuses every write.
type FailingStore struct {
	Err error
}

func (s FailingStore) Get(context.Context, string) ([]byte, error) { return nil, core.ErrSnapshotNotFound }
func (s FailingStore) Set(context.Context, string, []byte) error  { return s.Err }
func (s FailingStore) Delete(context.Context, string) error        { return s.Err }
