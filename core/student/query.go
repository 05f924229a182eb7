package student

import "github.com/trezcool/classbook/core"

// Select returns the students matching sel, in their original order.
func Select(students []Student, sel core.Selection) []Student {
	if sel.Any() {
		return append(make([]Student, 0, len(students)), students...)
	}
	res := make([]Student, 0, len(students))
	for _, s := range students {
		if sel.MatchDegree(s.DegreeID) && sel.MatchClass(s.ClassID) {
			res = append(res, s)
		}
	}
	return res
}

func maxID(students []Student) int {
	var max int
	for _, s := range students {
		if s.ID > max {
			max = s.ID
		}
	}
	return max
}

func indexOf(students []Student, id int) int {
	for i, s := range students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
