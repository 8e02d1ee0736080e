package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCatalog_SingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "faces.txt", `NAME: cat
 /\_/\
( o.o )
---
NAME: fish
><>
----------
star`)

	faces, err := LoadCatalog([]string{path})
	require.NoError(t, err)
	require.Len(t, faces, 3)

	assert.Equal(t, "cat", faces[0].Identity)
	assert.Equal(t, "/\\_/\\\n( o.o )", faces[0].Display)
	assert.Equal(t, Face{Identity: "fish", Display: "><>"}, faces[1])
	assert.Equal(t, Face{Identity: "star", Display: "star"}, faces[2])
}

func TestLoadCatalog_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one")
	writeFile(t, dir, "b.txt", "two\n---\nthree\n---\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	faces, err := LoadCatalog([]string{dir})
	require.NoError(t, err)
	assert.Len(t, faces, 3)
}

func TestLoadCatalog_NameOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "f.txt", "name: moon")
	faces, err := LoadCatalog([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []Face{{Identity: "moon", Display: "moon"}}, faces)
}

func TestLoadCatalog_Duplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "NAME: sun\n*")
	writeFile(t, dir, "b.txt", "NAME: sun\no")

	_, err := LoadCatalog([]string{dir})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadCatalog_MissingPath(t *testing.T) {
	_, err := LoadCatalog([]string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestDefaultCatalog(t *testing.T) {
	faces := DefaultCatalog()
	assert.Len(t, faces, 10)
	assert.NoError(t, checkDistinct(faces))
	assert.Equal(t, "cherry", faces[0].Identity)
}
