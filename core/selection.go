package core

// Selection is the (degree, class) filter pair shared by every listing.
// A nil field means "no constraint", never "match nothing".
type Selection struct {
	DegreeID *int
	ClassID  *int // 1-based class position
}

// Any reports whether the selection constrains nothing.
func (sel Selection) Any() bool {
	return sel.DegreeID == nil && sel.ClassID == nil
}

func (sel Selection) MatchDegree(degreeID int) bool {
	return sel.DegreeID == nil || *sel.DegreeID == degreeID
}

func (sel Selection) MatchClass(classID int) bool {
	return sel.ClassID == nil || *sel.ClassID == classID
}
