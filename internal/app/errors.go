package app

import "fmt"

// ImportFormatError reports an import source the editor refuses to
// read. Only plain .txt files are accepted; the check runs before any
// note is created so a bad pick leaves the workspace untouched.
type ImportFormatError struct {
	Path string
}

func (e *ImportFormatError) Error() string {
	return fmt.Sprintf("only .txt files can be imported: %s", e.Path)
}
