package refdata

// Unknown is the name returned for ids and positions that match nothing.
const Unknown = "?"

type Degree struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"notblank"`
}

// Class is identified by its 1-based position in the class list.
// ID is the stable identifier assigned at load time; fixtures usually omit it.
type Class struct {
	ID       int    `json:"id,omitempty" validate:"gte=0"`
	Position int    `json:"position"`
	Name     string `json:"name" validate:"notblank"`
}

type Teacher struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"notblank"`
}

// Matter is a school subject.
type Matter struct {
	ID   int    `json:"id" validate:"gt=0"`
	Name string `json:"name" validate:"notblank"`
}

// ClassList is the wrapper object the classes fixture is shipped in.
type ClassList struct {
	Classes []Class `json:"classes" validate:"dive"`
}

// Tables groups the raw reference tables a Store is built from.
type Tables struct {
	Degrees  []Degree  `json:"degrees" validate:"dive"`
	Classes  []Class   `json:"classes" validate:"dive"`
	Teachers []Teacher `json:"teachers" validate:"dive"`
	Matters  []Matter  `json:"matters" validate:"dive"`
}
