package student

import "github.com/trezcool/classbook/core"

type Student struct {
	ID       int    `json:"id" validate:"gt=0"`
	RA       int    `json:"ra"` // registration number
	Name     string `json:"name"`
	DegreeID int    `json:"degreeId"`
	ClassID  int    `json:"classId"` // 1-based class position
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	Name     string `json:"name" validate:"notblank"`
	DegreeID int    `json:"degreeId" validate:"gt=0"`
	ClassID  int    `json:"classId" validate:"gt=0"`
}

func (us *UpdateStudent) Validate() error {
	us.Name = core.CleanString(us.Name)
	return core.Validate.Struct(us)
}

// DegreeCount is the number of students enrolled in a degree.
type DegreeCount struct {
	DegreeID int    `json:"degreeId"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// View is a Student with its references resolved to display names.
type View struct {
	Student
	DegreeName string `json:"degreeName"`
	ClassName  string `json:"className"`
}
