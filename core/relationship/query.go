package relationship

import "github.com/trezcool/classbook/core"

// Select keeps, for every relationship, the degree assignments matching sel:
// the degree matches and at least one class matches.
// Relationships left without assignments are dropped; order is preserved.
func Select(rels []Relationship, sel core.Selection) []Relationship {
	res := make([]Relationship, 0, len(rels))
	for _, rel := range rels {
		var degrees []DegreeAssignment
		for _, da := range rel.Degrees {
			if sel.MatchDegree(da.DegreeID) && matchAnyClass(da, sel) {
				degrees = append(degrees, da)
			}
		}
		if len(degrees) == 0 {
			continue
		}
		match := rel
		match.Degrees = degrees
		res = append(res, match.clone())
	}
	return res
}

func matchAnyClass(da DegreeAssignment, sel core.Selection) bool {
	if sel.ClassID == nil {
		return true
	}
	return da.hasClass(*sel.ClassID)
}

func findByKey(rels []Relationship, teacherID, matterID int) int {
	for i, rel := range rels {
		if rel.TeacherID == teacherID && rel.MatterID == matterID {
			return i
		}
	}
	return -1
}

func findDegree(rel Relationship, degreeID int) int {
	for i, da := range rel.Degrees {
		if da.DegreeID == degreeID {
			return i
		}
	}
	return -1
}

func nextID(rels []Relationship) int {
	var max int
	for _, rel := range rels {
		if rel.ID > max {
			max = rel.ID
		}
	}
	return max + 1
}
