package board

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultCatalog returns the built-in faces.
func DefaultCatalog() []Face {
	return []Face{
		{Identity: "cherry", Display: "🍒"},
		{Identity: "cheese", Display: "🧀"},
		{Identity: "carrot", Display: "🥕"},
		{Identity: "rose", Display: "🌹"},
		{Identity: "barrel", Display: "🛢️"},
		{Identity: "ghost", Display: "👻"},
		{Identity: "sun", Display: "🌞"},
		{Identity: "butterfly", Display: "🦋"},
		{Identity: "cloud", Display: "🌧️"},
		{Identity: "dwarf", Display: "🧙"},
	}
}

var (
	separatorRe = regexp.MustCompile(`(?m)^-{3,}[ \t]*$`)
	nameRe      = regexp.MustCompile(`(?i)^NAME:[ \t]*(.+)$`)
)

// LoadCatalog reads faces from a list of paths (files or directories).
// Faces in a file are separated by lines of three or more dashes.
func LoadCatalog(paths []string) ([]Face, error) {
	var faces []Face

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if !info.IsDir() {
			f, err := loadFaceFile(path)
			if err != nil {
				return nil, err
			}
			faces = append(faces, f...)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			f, err := loadFaceFile(filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			faces = append(faces, f...)
		}
	}

	if err := checkDistinct(faces); err != nil {
		return nil, err
	}
	return faces, nil
}

func loadFaceFile(path string) ([]Face, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var content strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		content.WriteString(scanner.Text() + "\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	var faces []Face
	for _, part := range separatorRe.Split(content.String(), -1) {
		block := strings.TrimSpace(part)
		if block == "" {
			continue
		}
		faces = append(faces, parseFace(block))
	}
	return faces, nil
}

// parseFace turns one block into a Face. An optional first line
// "NAME: identity" names the face; otherwise the first line is the identity.
func parseFace(block string) Face {
	first, rest, _ := strings.Cut(block, "\n")
	if m := nameRe.FindStringSubmatch(strings.TrimSpace(first)); m != nil {
		identity := strings.TrimSpace(m[1])
		display := strings.TrimSpace(rest)
		if display == "" {
			display = identity
		}
		return Face{Identity: identity, Display: display}
	}
	return Face{Identity: strings.TrimSpace(first), Display: block}
}
