package student_test

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/classbook/core"
	. "github.com/trezcool/classbook/core/student"
	"github.com/trezcool/classbook/tests"
)

func seed() []Student {
	return []Student{
		{ID: 1, RA: 100001, Name: "Ana", DegreeID: 1, ClassID: 1},
		{ID: 2, RA: 100002, Name: "Bruno", DegreeID: 1, ClassID: 2},
		{ID: 7, RA: 100007, Name: "Carla", DegreeID: 2, ClassID: 1},
		{ID: 4, RA: 100004, Name: "Davi", DegreeID: 9, ClassID: 3}, // unknown degree
	}
}

func ids(students []Student) []int {
	res := make([]int, len(students))
	for i, s := range students {
		res[i] = s.ID
	}
	return res
}

func TestService_Filter(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

	tests := []struct {
		name string
		sel  core.Selection
		want []int
	}{
		{name: "no filter", sel: core.Selection{}, want: []int{1, 2, 7, 4}},
		{name: "degree", sel: core.Selection{DegreeID: core.IntPtr(1)}, want: []int{1, 2}},
		{name: "class", sel: core.Selection{ClassID: core.IntPtr(1)}, want: []int{1, 7}},
		{name: "degree and class", sel: core.Selection{DegreeID: core.IntPtr(1), ClassID: core.IntPtr(2)}, want: []int{2}},
		{name: "nothing matches", sel: core.Selection{DegreeID: core.IntPtr(5)}, want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Filter(tt.sel)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestService_Filter_isSubsetOfList(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)
	all := svc.List()

	assert.Equal(t, all, svc.Filter(core.Selection{}))
	for _, degreeID := range []int{1, 2, 5, 9} {
		var want []Student
		for _, s := range all {
			if s.DegreeID == degreeID {
				want = append(want, s)
			}
		}
		got := svc.Filter(core.Selection{DegreeID: core.IntPtr(degreeID)})
		assert.ElementsMatch(t, want, got, "degree %d", degreeID)
		assert.Equal(t, got, svc.ByDegree(degreeID))
	}
}

func TestService_List_returnsCopy(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)
	list := svc.List()
	list[0].Name = "changed"
	assert.Equal(t, "Ana", svc.List()[0].Name)

	unfiltered := svc.Filter(core.Selection{})
	unfiltered[0].Name = "changed"
	assert.Equal(t, "Ana", svc.List()[0].Name)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates in place and persists", func(t *testing.T) {
		store := testutil.SnapshotStore()
		svc := testutil.StudentService(t, store, seed()...)

		std, found, err := svc.Update(ctx, 2, UpdateStudent{Name: "  Bruna ", DegreeID: 5, ClassID: 3})
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, Student{ID: 2, RA: 100002, Name: "Bruna", DegreeID: 5, ClassID: 3}, std)

		list := svc.List()
		assert.Equal(t, std, list[1], "position in the collection is kept")
		assert.Equal(t, list, testutil.ReadStudents(t, store))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store := testutil.SnapshotStore()
		svc := testutil.StudentService(t, store, seed()...)

		_, found, err := svc.Update(ctx, 99, UpdateStudent{Name: "x", DegreeID: 1, ClassID: 1})
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, seed(), svc.List())
		_, err = store.Get(ctx, core.StudentsKey)
		assert.Equal(t, core.ErrSnapshotNotFound, err, "nothing persisted")
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

		_, _, err := svc.Update(ctx, 1, UpdateStudent{Name: "  ", DegreeID: 0, ClassID: -1})
		var vErrs validator.ValidationErrors
		require.True(t, errors.As(err, &vErrs))
		assert.Equal(t, map[string]string{
			"name":     "this field cannot be blank",
			"degreeId": "degreeId must be greater than 0",
			"classId":  "classId must be greater than 0",
		}, core.TranslateValidationErrors(vErrs))
		assert.Equal(t, seed(), svc.List())
	})

	t.Run("failed persistence keeps the collection", func(t *testing.T) {
		svc := testutil.StudentService(t, testutil.FailingStore{Err: fmt.Errorf("disk full")}, seed()...)

		_, found, err := svc.Update(ctx, 1, UpdateStudent{Name: "x", DegreeID: 1, ClassID: 1})
		assert.True(t, found)
		assert.EqualError(t, err, `updating student: writing snapshot "studentsDB": disk full`)
		assert.Equal(t, seed(), svc.List())
	})
}

func TestService_BulkGenerate(t *testing.T) {
	ctx := context.Background()
	store := testutil.SnapshotStore()
	svc := testutil.StudentService(t, store, seed()...)
	before := svc.List()

	generated, err := svc.BulkGenerate(ctx, 300)
	require.NoError(t, err)
	require.Len(t, generated, 300)

	after := svc.List()
	assert.Len(t, after, len(before)+300)
	assert.Equal(t, before, after[:len(before)], "existing students are untouched")

	seen := make(map[int]bool, len(after))
	for _, s := range after {
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		seen[s.ID] = true
	}
	for i, s := range generated {
		assert.Equal(t, 8+i, s.ID, "ids continue from the max id (7)")
		assert.Equal(t, fmt.Sprintf("Generated Student %d", s.ID), s.Name)
		assert.Contains(t, []int{1, 2, 5}, s.DegreeID)
		assert.True(t, s.ClassID >= 1 && s.ClassID <= 3, "class %d out of range", s.ClassID)
		assert.True(t, s.RA >= 100000 && s.RA <= 999999, "ra %d out of range", s.RA)
	}
	assert.Equal(t, after, testutil.ReadStudents(t, store))
}

func TestService_BulkGenerate_emptyCollection(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore())

	generated, err := svc.BulkGenerate(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(generated))
}

func TestService_BulkGenerate_invalidCount(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

	tests := []struct {
		count int
		want  string
	}{
		{count: 0, want: "must be greater than 0"},
		{count: -3, want: "must be greater than 0"},
		{count: MaxGenerate + 1, want: "must be at most 10000"},
		{count: math.MaxInt, want: "must be at most 10000"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.count), func(t *testing.T) {
			generated, err := svc.BulkGenerate(context.Background(), tt.count)
			assert.Nil(t, generated)
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, []core.FieldError{{Field: "count", Error: tt.want}}, vErr.Fields)
		})
	}
	assert.Len(t, svc.List(), 4)

	generated, err := svc.BulkGenerate(context.Background(), MaxGenerate)
	require.NoError(t, err)
	assert.Len(t, generated, MaxGenerate)
}

func TestService_CountByDegree(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

	assert.Equal(t, []DegreeCount{
		{DegreeID: 1, Name: "1st grade", Count: 2},
		{DegreeID: 2, Name: "2nd grade", Count: 1},
		{DegreeID: 5, Name: "5th grade", Count: 0},
	}, svc.CountByDegree())
}

func TestService_Views(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

	views := svc.Views(svc.List())
	assert.Equal(t, "1st grade", views[0].DegreeName)
	assert.Equal(t, "A", views[0].ClassName)
	assert.Equal(t, "B", views[1].ClassName)
	assert.Equal(t, "?", views[3].DegreeName, "unknown degree resolves to the placeholder")
	assert.Equal(t, "C", views[3].ClassName)
}

func TestService_Save(t *testing.T) {
	store := testutil.SnapshotStore()
	svc := testutil.StudentService(t, store, seed()...)

	require.NoError(t, svc.Save(context.Background()))
	assert.Equal(t, seed(), testutil.ReadStudents(t, store))
}

func TestWriteXLSX(t *testing.T) {
	svc := testutil.StudentService(t, testutil.SnapshotStore(), seed()...)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, svc.Views(svc.Filter(core.Selection{DegreeID: core.IntPtr(1)}))))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"RA", "Name", "Degree", "Class"},
		{"100001", "Ana", "1st grade", "A"},
		{"100002", "Bruno", "1st grade", "B"},
	}, rows)
}
