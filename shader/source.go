package shader

import (
	"errors"
	"os"
)

// LoadSources reads the vertex and fragment sources from disk. An unreadable
// file yields an empty source and a *FileReadError; the other file is still
// read, so callers can go on to compile whatever was loaded.
func LoadSources(vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	var errs []error
	if b, readErr := os.ReadFile(vertexPath); readErr != nil {
		errs = append(errs, &FileReadError{Path: vertexPath, Err: readErr})
	} else {
		vertex = string(b)
	}
	if b, readErr := os.ReadFile(fragmentPath); readErr != nil {
		errs = append(errs, &FileReadError{Path: fragmentPath, Err: readErr})
	} else {
		fragment = string(b)
	}
	return vertex, fragment, errors.Join(errs...)
}
