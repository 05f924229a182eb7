package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/classbook/apps/api/echo"
	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/relationship"
	"github.com/trezcool/classbook/core/school"
	"github.com/trezcool/classbook/core/student"
	"github.com/trezcool/classbook/tests"
)

var errNotFound = httpErr{Error: "not found"}

func seedStudents() []student.Student {
	return []student.Student{
		{ID: 1, RA: 100001, Name: "Alice", DegreeID: 1, ClassID: 1},
		{ID: 2, RA: 100002, Name: "Bob", DegreeID: 1, ClassID: 2},
		{ID: 3, RA: 100003, Name: "Carol", DegreeID: 2, ClassID: 1},
	}
}

func seedRelationships() []relationship.Relationship {
	return []relationship.Relationship{
		{ID: 1, TeacherID: 1, MatterID: 1, Degrees: []relationship.DegreeAssignment{
			{DegreeID: 1, Classes: []relationship.ClassRef{{ClassID: 1}, {ClassID: 2}}},
			{DegreeID: 2, Classes: []relationship.ClassRef{{ClassID: 3}}},
		}},
		{ID: 2, TeacherID: 2, MatterID: 2, Degrees: []relationship.DegreeAssignment{
			{DegreeID: 5, Classes: []relationship.ClassRef{{ClassID: 1}}},
		}},
	}
}

// setup returns a server over seeded registries sharing one in-memory snapshot store.
func setup(t *testing.T) (*Server, *school.School, core.SnapshotStore) {
	store := testutil.SnapshotStore()
	sch := &school.School{
		Ref:           testutil.RefStore(t),
		Students:      testutil.StudentService(t, store, seedStudents()...),
		Relationships: testutil.RelationshipService(t, store, seedRelationships()...),
	}
	conf := &core.Config{AppName: "Classbook", TestMode: true, GenerateCount: 4}
	conf.Server.DisableReqLogs = true

	app := NewServer(ServerDeps{Conf: conf, Logger: testutil.Logger(), School: sch})
	return app, sch, store
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
