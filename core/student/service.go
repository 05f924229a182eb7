package student

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/refdata"
)

const (
	raMin = 100000
	raMax = 999999

	// MaxGenerate caps a single BulkGenerate call.
	MaxGenerate = 10000
)

var errNoReferenceData = core.NewValidationError(errors.New("no degrees or classes to assign students to"))

type Option func(*Service)

// WithRand makes generation deterministic.
func WithRand(rnd *rand.Rand) Option {
	return func(svc *Service) { svc.rnd = rnd }
}

// Service owns the student collection and persists it as one snapshot.
type Service struct {
	mutex    sync.RWMutex
	students []Student
	ref      *refdata.Store
	store    core.SnapshotStore
	log      core.Logger
	rnd      *rand.Rand
}

func NewService(students []Student, ref *refdata.Store, store core.SnapshotStore, logger core.Logger, opts ...Option) *Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(ref, "ref"),
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(logger, "logger"),
	).CheckAndPanic()

	svc := &Service{
		students: append(make([]Student, 0, len(students)), students...),
		ref:      ref,
		store:    store,
		log:      logger,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// List returns every student in collection order.
func (svc *Service) List() []Student {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return append(make([]Student, 0, len(svc.students)), svc.students...)
}

func (svc *Service) Filter(sel core.Selection) []Student {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return Select(svc.students, sel)
}

func (svc *Service) ByDegree(degreeID int) []Student {
	return svc.Filter(core.Selection{DegreeID: &degreeID})
}

// CountByDegree counts students per reference degree, in reference order.
func (svc *Service) CountByDegree() []DegreeCount {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	degrees := svc.ref.Degrees()
	idx := make(map[int]int, len(degrees))
	counts := make([]DegreeCount, len(degrees))
	for i, d := range degrees {
		idx[d.ID] = i
		counts[i] = DegreeCount{DegreeID: d.ID, Name: d.Name}
	}
	for _, s := range svc.students {
		if i, ok := idx[s.DegreeID]; ok {
			counts[i].Count++
		}
	}
	return counts
}

// Views resolves the references of students to display names.
func (svc *Service) Views(students []Student) []View {
	views := make([]View, len(students))
	for i, s := range students {
		views[i] = View{
			Student:    s,
			DegreeName: svc.ref.DegreeName(s.DegreeID),
			ClassName:  svc.ref.ClassName(s.ClassID),
		}
	}
	return views
}

// Update edits the student with the given id.
// An unknown id is a no-op: found is false and nothing is persisted.
func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (std Student, found bool, err error) {
	if err = us.Validate(); err != nil {
		return Student{}, false, err
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	i := indexOf(svc.students, id)
	if i < 0 {
		return Student{}, false, nil
	}

	students := append(make([]Student, 0, len(svc.students)), svc.students...)
	std = students[i]
	std.Name = us.Name
	std.DegreeID = us.DegreeID
	std.ClassID = us.ClassID
	students[i] = std

	if err = svc.commit(ctx, students); err != nil {
		return Student{}, true, errors.Wrap(err, "updating student")
	}
	return std, true, nil
}

// BulkGenerate appends count random students with ids above the current maximum.
func (svc *Service) BulkGenerate(ctx context.Context, count int) ([]Student, error) {
	if count <= 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "count", Error: "must be greater than 0"})
	}
	if count > MaxGenerate {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "count", Error: fmt.Sprintf("must be at most %d", MaxGenerate)})
	}
	degrees := svc.ref.Degrees()
	classCount := svc.ref.ClassCount()
	if len(degrees) == 0 || classCount == 0 {
		return nil, errNoReferenceData
	}

	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	lastID := maxID(svc.students)
	generated := make([]Student, 0, count)
	for i := 0; i < count; i++ {
		lastID++
		generated = append(generated, Student{
			ID:       lastID,
			RA:       raMin + svc.rnd.Intn(raMax-raMin+1),
			Name:     fmt.Sprintf("Generated Student %d", lastID),
			DegreeID: degrees[svc.rnd.Intn(len(degrees))].ID,
			ClassID:  svc.rnd.Intn(classCount) + 1,
		})
	}

	students := make([]Student, 0, len(svc.students)+count)
	students = append(students, svc.students...)
	students = append(students, generated...)
	if err := svc.commit(ctx, students); err != nil {
		return nil, errors.Wrap(err, "generating students")
	}
	svc.log.Info(fmt.Sprintf("generated %d students", count))
	return generated, nil
}

// Save persists the whole collection.
func (svc *Service) Save(ctx context.Context) error {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	return core.WriteSnapshot(ctx, svc.store, core.StudentsKey, svc.students)
}

// commit persists students then makes them the current collection.
// Callers hold the write lock.
func (svc *Service) commit(ctx context.Context, students []Student) error {
	if err := core.WriteSnapshot(ctx, svc.store, core.StudentsKey, students); err != nil {
		svc.log.Error("persisting students", err)
		return err
	}
	svc.students = students
	return nil
}
