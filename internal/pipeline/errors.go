package pipeline

import "fmt"

// FileError is a failure that aborts one file. Other files are unaffected.
type FileError struct {
	// Path is the relative path of the file.
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
