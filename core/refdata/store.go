package refdata

import (
	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

// Store is a read-only set of lookup tables.
// Lookups never fail: a miss resolves to Unknown.
type Store struct {
	degrees  []Degree
	classes  []Class
	teachers []Teacher
	matters  []Matter

	degreeByID  map[int]Degree
	teacherByID map[int]Teacher
	matterByID  map[int]Matter
}

// NewStore validates the tables and indexes them.
// Classes get their 1-based position, and their position as ID when they carry none.
func NewStore(tables Tables) (*Store, error) {
	if err := core.Validate.Struct(tables); err != nil {
		return nil, errors.Wrap(err, "validating reference tables")
	}

	s := &Store{
		degrees:     append([]Degree(nil), tables.Degrees...),
		classes:     make([]Class, len(tables.Classes)),
		teachers:    append([]Teacher(nil), tables.Teachers...),
		matters:     append([]Matter(nil), tables.Matters...),
		degreeByID:  make(map[int]Degree, len(tables.Degrees)),
		teacherByID: make(map[int]Teacher, len(tables.Teachers)),
		matterByID:  make(map[int]Matter, len(tables.Matters)),
	}
	for _, d := range s.degrees {
		if _, dup := s.degreeByID[d.ID]; dup {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "degrees", Error: "duplicate degree id"})
		}
		s.degreeByID[d.ID] = d
	}
	for _, t := range s.teachers {
		if _, dup := s.teacherByID[t.ID]; dup {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "teachers", Error: "duplicate teacher id"})
		}
		s.teacherByID[t.ID] = t
	}
	for _, m := range s.matters {
		if _, dup := s.matterByID[m.ID]; dup {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "matters", Error: "duplicate matter id"})
		}
		s.matterByID[m.ID] = m
	}
	for i, c := range tables.Classes {
		c.Name = core.CleanString(c.Name)
		c.Position = i + 1
		if c.ID == 0 {
			c.ID = c.Position
		}
		s.classes[i] = c
	}
	return s, nil
}

func (s *Store) Degrees() []Degree   { return append([]Degree(nil), s.degrees...) }
func (s *Store) Classes() []Class    { return append([]Class(nil), s.classes...) }
func (s *Store) Teachers() []Teacher { return append([]Teacher(nil), s.teachers...) }
func (s *Store) Matters() []Matter   { return append([]Matter(nil), s.matters...) }
func (s *Store) ClassCount() int     { return len(s.classes) }

func (s *Store) HasDegree(id int) bool {
	_, ok := s.degreeByID[id]
	return ok
}

func (s *Store) DegreeName(id int) string {
	if d, ok := s.degreeByID[id]; ok {
		return d.Name
	}
	return Unknown
}

// ClassName resolves a 1-based class position: position K is entry K-1.
func (s *Store) ClassName(position int) string {
	idx := position - 1
	if idx < 0 || idx >= len(s.classes) {
		return Unknown
	}
	return s.classes[idx].Name
}

func (s *Store) TeacherName(id int) string {
	if t, ok := s.teacherByID[id]; ok {
		return t.Name
	}
	return Unknown
}

func (s *Store) SubjectName(id int) string {
	if m, ok := s.matterByID[id]; ok {
		return m.Name
	}
	return Unknown
}
