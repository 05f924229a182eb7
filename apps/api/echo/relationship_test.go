package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/tests"
)

func Test_relationshipApi_query(t *testing.T) {
	app, _, _ := setup(t)

	adaMaths := `{"id": 1, "teacherId": 1, "teacherName": "Ada Lovelace", "matterId": 1, "matterName": "Maths", "degrees": [%s]}`
	turingHistory := `{"id": 2, "teacherId": 2, "teacherName": "Alan Turing", "matterId": 2, "matterName": "History", "degrees": [
		{"degreeId": 5, "degreeName": "5th grade", "classes": [{"classId": 1, "className": "A"}]}
	]}`
	first := `{"degreeId": 1, "degreeName": "1st grade", "classes": [{"classId": 1, "className": "A"}, {"classId": 2, "className": "B"}]}`
	second := `{"degreeId": 2, "degreeName": "2nd grade", "classes": [{"classId": 3, "className": "C"}]}`

	tests := []httpTest{
		{
			name:     "no filter",
			method:   http.MethodGet,
			path:     "/v1/relationships",
			wantCode: http.StatusOK,
			wantData: []byte("[" + sprintf(adaMaths, first+","+second) + "," + turingHistory + "]"),
		},
		{
			name:     "class keeps only matching degrees",
			method:   http.MethodGet,
			path:     "/v1/relationships?class=3",
			wantCode: http.StatusOK,
			wantData: []byte("[" + sprintf(adaMaths, second) + "]"),
		},
		{
			name:     "class matching two relationships",
			method:   http.MethodGet,
			path:     "/v1/relationships?class=1",
			wantCode: http.StatusOK,
			wantData: []byte("[" + sprintf(adaMaths, first) + "," + turingHistory + "]"),
		},
		{
			name:     "degree",
			method:   http.MethodGet,
			path:     "/v1/relationships?degree=5",
			wantCode: http.StatusOK,
			wantData: []byte("[" + turingHistory + "]"),
		},
		{
			name:     "no match",
			method:   http.MethodGet,
			path:     "/v1/relationships?degree=1&class=3",
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
		{
			name:     "invalid class",
			method:   http.MethodGet,
			path:     "/v1/relationships?class=A",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"class": "must be an integer"}`),
		},
	}
	runHTTPTests(t, app, tests)
}

func Test_relationshipApi_upsert(t *testing.T) {
	app, sch, store := setup(t)

	tests := []httpTest{
		{
			name:     "created",
			method:   http.MethodPost,
			path:     "/v1/relationships",
			body:     []byte(`{"teacherId": 2, "matterId": 1, "degreeId": 1, "classId": 1}`),
			wantCode: http.StatusCreated,
			wantData: []byte(`{"outcome": "created", "message": "relationship created", "relationship": {
				"id": 3, "teacherId": 2, "teacherName": "Alan Turing", "matterId": 1, "matterName": "Maths",
				"degrees": [{"degreeId": 1, "degreeName": "1st grade", "classes": [{"classId": 1, "className": "A"}]}]
			}}`),
		},
		{
			name:     "duplicate",
			method:   http.MethodPost,
			path:     "/v1/relationships",
			body:     []byte(`{"teacherId": 2, "matterId": 1, "degreeId": 1, "classId": 1}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"outcome": "duplicate", "message": "teacher already teaches this class", "relationship": {
				"id": 3, "teacherId": 2, "teacherName": "Alan Turing", "matterId": 1, "matterName": "Maths",
				"degrees": [{"degreeId": 1, "degreeName": "1st grade", "classes": [{"classId": 1, "className": "A"}]}]
			}}`),
		},
		{
			name:     "class added",
			method:   http.MethodPost,
			path:     "/v1/relationships",
			body:     []byte(`{"teacherId": 2, "matterId": 2, "degreeId": 5, "classId": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"outcome": "class_added", "message": "class added to teacher", "relationship": {
				"id": 2, "teacherId": 2, "teacherName": "Alan Turing", "matterId": 2, "matterName": "History",
				"degrees": [{"degreeId": 5, "degreeName": "5th grade", "classes": [
					{"classId": 1, "className": "A"}, {"classId": 2, "className": "B"}
				]}]
			}}`),
		},
		{
			name:     "degree added",
			method:   http.MethodPost,
			path:     "/v1/relationships",
			body:     []byte(`{"teacherId": 2, "matterId": 1, "degreeId": 2, "classId": 3}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"outcome": "degree_added", "message": "degree added to teacher", "relationship": {
				"id": 3, "teacherId": 2, "teacherName": "Alan Turing", "matterId": 1, "matterName": "Maths",
				"degrees": [
					{"degreeId": 1, "degreeName": "1st grade", "classes": [{"classId": 1, "className": "A"}]},
					{"degreeId": 2, "degreeName": "2nd grade", "classes": [{"classId": 3, "className": "C"}]}
				]
			}}`),
		},
		{
			name:     "invalid",
			method:   http.MethodPost,
			path:     "/v1/relationships",
			body:     []byte(`{"teacherId": 1}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"matterId": "matterId must be greater than 0",
				"degreeId": "degreeId must be greater than 0",
				"classId": "classId must be greater than 0"
			}`),
		},
	}
	runHTTPTests(t, app, tests)

	rels := sch.Relationships.List()
	assert.Len(t, rels, 3)
	assert.Equal(t, rels, testutil.ReadRelationships(t, store))
	assert.Equal(t, []relationship.DegreeAssignment{
		{DegreeID: 1, Classes: []relationship.ClassRef{{ClassID: 1}}},
		{DegreeID: 2, Classes: []relationship.ClassRef{{ClassID: 3}}},
	}, rels[2].Degrees)
}
