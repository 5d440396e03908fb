package extractor

import "fmt"

// ParseError reports a source document that could not be read at all:
// malformed XML, invalid JSON, or a schema node with no inferable shape.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse error: %v", e.Err)
	}
	return fmt.Sprintf("parse error at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnresolvedReferenceError reports a dangling type reference, $ref target or
// namespace prefix. It always names the offending node path.
type UnresolvedReferenceError struct {
	Path string
	Ref  string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference %q at %s", e.Ref, e.Path)
}
