// Package fixtures ships the reference tables and the seed collections.
package fixtures

import (
	"embed"
	"io/fs"
	"os"

	"github.com/trezcool/classbook/core"
)

// File names
const (
	Degrees       = "degrees.json"
	Classes       = "classes.json"
	Teachers      = "teachers.json"
	Matters       = "matters.json"
	Students      = "students.json"
	Relationships = "relationships.json"
)

//go:embed *.json
var embedded embed.FS

// Open returns the fixtures found in dir, or the embedded ones when dir is empty.
func Open(dir string) fs.FS {
	if dir == "" {
		return embedded
	}
	return os.DirFS(dir)
}

// SeedFile returns the fixture seeding the snapshot stored under key.
func SeedFile(key string) (string, bool) {
	switch key {
	case core.StudentsKey:
		return Students, true
	case core.RelationshipsKey:
		return Relationships, true
	}
	return "", false
}
