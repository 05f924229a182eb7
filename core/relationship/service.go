package relationship

import (
	"context"
	"fmt"
	"sync"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/refdata"
)

// Service owns the relationship collection and persists it as one snapshot.
type Service struct {
	mutex sync.RWMutex
	rels  []Relationship
	ref   *refdata.Store
	store core.SnapshotStore
	log   core.Logger
}

func NewService(rels []Relationship, ref *refdata.Store, store core.SnapshotStore, logger core.Logger) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(ref, "ref"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	owned := make([]Relationship, len(rels))
	for i, rel := range rels {
		owned[i] = rel.clone()
	}
	return &Service{rels: owned, ref: ref, store: store, log: logger}
}

func (svc *Service) List() []Relationship {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	rels := make([]Relationship, len(svc.rels))
	for i, rel := range svc.rels {
		rels[i] = rel.clone()
	}
	return rels
}

// FilterView returns the relationships matching sel, reduced to their matching degree assignments.
func (svc *Service) FilterView(sel core.Selection) []Relationship {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return Select(svc.rels, sel)
}

// Upsert records that a teacher teaches a subject to a class of a degree.
// Repeating an assignment is reported as Duplicate and changes nothing.
func (svc *Service) Upsert(ctx context.Context, a Assignment) (Outcome, Relationship, error) {
	if err := a.Validate(); err != nil {
		return 0, Relationship{}, err
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	rels := make([]Relationship, len(svc.rels), len(svc.rels)+1)
	copy(rels, svc.rels)

	var outcome Outcome
	ref := ClassRef{ClassID: a.ClassID}
	i := findByKey(rels, a.TeacherID, a.MatterID)
	if i < 0 {
		rels = append(rels, Relationship{
			ID:        nextID(rels),
			TeacherID: a.TeacherID,
			MatterID:  a.MatterID,
			Degrees:   []DegreeAssignment{{DegreeID: a.DegreeID, Classes: []ClassRef{ref}}},
		})
		i = len(rels) - 1
		outcome = Created
	} else {
		rel := rels[i].clone()
		if j := findDegree(rel, a.DegreeID); j < 0 {
			rel.Degrees = append(rel.Degrees, DegreeAssignment{DegreeID: a.DegreeID, Classes: []ClassRef{ref}})
			outcome = DegreeAdded
		} else if rel.Degrees[j].hasClass(a.ClassID) {
			outcome = Duplicate
		} else {
			rel.Degrees[j].Classes = append(rel.Degrees[j].Classes, ref)
			outcome = ClassAdded
		}
		rels[i] = rel
	}
	if !outcome.Mutated() {
		return outcome, rels[i].clone(), nil
	}

	if err := core.WriteSnapshot(ctx, svc.store, core.RelationshipsKey, rels); err != nil {
		svc.log.Error("persisting relationships", err)
		return 0, Relationship{}, errors.Wrap(err, "upserting relationship")
	}
	svc.rels = rels
	svc.log.Debug(fmt.Sprintf("relationship %d: %s", rels[i].ID, outcome))
	return outcome, rels[i].clone(), nil
}

// Save persists the whole collection.
func (svc *Service) Save(ctx context.Context) error {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return core.WriteSnapshot(ctx, svc.store, core.RelationshipsKey, svc.rels)
}

// Views resolves teacher, subject, degree and class names of rels.
func (svc *Service) Views(rels []Relationship) []View {
	views := make([]View, len(rels))
	for i, rel := range rels {
		v := View{
			ID:          rel.ID,
			TeacherID:   rel.TeacherID,
			TeacherName: svc.ref.TeacherName(rel.TeacherID),
			MatterID:    rel.MatterID,
			MatterName:  svc.ref.SubjectName(rel.MatterID),
			Degrees:     make([]DegreeView, len(rel.Degrees)),
		}
		for j, da := range rel.Degrees {
			dv := DegreeView{
				DegreeID:   da.DegreeID,
				DegreeName: svc.ref.DegreeName(da.DegreeID),
				Classes:    make([]ClassView, len(da.Classes)),
			}
			for k, c := range da.Classes {
				dv.Classes[k] = ClassView{ClassID: c.ClassID, ClassName: svc.ref.ClassName(c.ClassID)}
			}
			v.Degrees[j] = dv
		}
		views[i] = v
	}
	return views
}
