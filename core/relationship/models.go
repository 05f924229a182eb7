package relationship

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/classbook/core"
)

var errClassRefMissing = errors.New("class reference needs classId or classPosition")

// ClassRef points at a class by its 1-based position.
// Older fixtures spell the field classPosition; it is always written back as classId.
type ClassRef struct {
	ClassID int `json:"classId"`
}

func (ref *ClassRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClassID       *int `json:"classId"`
		ClassPosition *int `json:"classPosition"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// presence, not truthiness: a present classId of 0 is kept as is
	switch {
	case raw.ClassID != nil:
		ref.ClassID = *raw.ClassID
	case raw.ClassPosition != nil:
		ref.ClassID = *raw.ClassPosition
	default:
		return errClassRefMissing
	}
	return nil
}

type DegreeAssignment struct {
	DegreeID int        `json:"degreeId"`
	Classes  []ClassRef `json:"classes"`
}

func (da DegreeAssignment) hasClass(classID int) bool {
	for _, c := range da.Classes {
		if c.ClassID == classID {
			return true
		}
	}
	return false
}

// Relationship records a teacher teaching a subject to some degree/class combinations.
// (TeacherID, MatterID) is its natural key.
type Relationship struct {
	ID        int                `json:"id"`
	TeacherID int                `json:"teacherId"`
	MatterID  int                `json:"matterId"`
	Degrees   []DegreeAssignment `json:"degrees"`
}

func (rel Relationship) clone() Relationship {
	degrees := make([]DegreeAssignment, len(rel.Degrees))
	for i, da := range rel.Degrees {
		degrees[i] = DegreeAssignment{
			DegreeID: da.DegreeID,
			Classes:  append([]ClassRef(nil), da.Classes...),
		}
	}
	rel.Degrees = degrees
	return rel
}

// Assignment asks for a teacher to teach a subject to one class of one degree.
type Assignment struct {
	TeacherID int `json:"teacherId" validate:"gt=0"`
	MatterID  int `json:"matterId" validate:"gt=0"`
	DegreeID  int `json:"degreeId" validate:"gt=0"`
	ClassID   int `json:"classId" validate:"gt=0"`
}

func (a Assignment) Validate() error { return core.Validate.Struct(a) }

// Outcome tells what an upsert did.
type Outcome int

const (
	Created Outcome = iota + 1
	DegreeAdded
	ClassAdded
	Duplicate
)

var outcomeNames = map[Outcome]string{
	Created:     "created",
	DegreeAdded: "degree_added",
	ClassAdded:  "class_added",
	Duplicate:   "duplicate",
}

var outcomeMessages = map[Outcome]string{
	Created:     "relationship created",
	DegreeAdded: "degree added to teacher",
	ClassAdded:  "class added to teacher",
	Duplicate:   "teacher already teaches this class",
}

func (o Outcome) String() string { return outcomeNames[o] }

// Message is the human readable description of o.
func (o Outcome) Message() string { return outcomeMessages[o] }

// Mutated reports whether the collection changed.
func (o Outcome) Mutated() bool { return o != Duplicate }

func (o Outcome) MarshalText() ([]byte, error) {
	name, ok := outcomeNames[o]
	if !ok {
		return nil, errors.Errorf("unknown outcome %d", int(o))
	}
	return []byte(name), nil
}

// View is the part of a Relationship matching a selection, with names resolved.
type View struct {
	ID          int          `json:"id"`
	TeacherID   int          `json:"teacherId"`
	TeacherName string       `json:"teacherName"`
	MatterID    int          `json:"matterId"`
	MatterName  string       `json:"matterName"`
	Degrees     []DegreeView `json:"degrees"`
}

type DegreeView struct {
	DegreeID   int         `json:"degreeId"`
	DegreeName string      `json:"degreeName"`
	Classes    []ClassView `json:"classes"`
}

type ClassView struct {
	ClassID   int    `json:"classId"`
	ClassName string `json:"className"`
}
