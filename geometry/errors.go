package geometry

import (
	"errors"
	"fmt"
)

// ErrWrongFileFormat is matched by every WrongFileFormatError.
var ErrWrongFileFormat = errors.New("wrong file format")

// OpenError reports a file that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// WrongFileFormatError covers header and section keyword mismatches, unsupported
// versions and any other structural parse failure. Line is 1-based, 0 when unknown.
type WrongFileFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *WrongFileFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("wrong file format %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("wrong file format %s: %s", e.Path, e.Reason)
}

func (e *WrongFileFormatError) Is(target error) bool { return target == ErrWrongFileFormat }

// NonExistingDomainError is raised when a domain references an interface id that was never declared.
type NonExistingDomainError struct {
	Domain string
	ID     string
}

func (e *NonExistingDomainError) Error() string {
	return fmt.Sprintf("domain %q references non existing interface %q", e.Domain, e.ID)
}

// BadDomainError is raised when the conductivity file has no entry for a domain.
type BadDomainError struct {
	Domain string
}

func (e *BadDomainError) Error() string {
	return fmt.Sprintf("no conductivity defined for domain %q", e.Domain)
}

// InterfaceNotClosedError is raised when the meshes of an interface do not form
// a closed, consistently oriented surface.
type InterfaceNotClosedError struct {
	Interface string
	Reason    string
}

func (e *InterfaceNotClosedError) Error() string {
	return fmt.Sprintf("interface %q is not closed (%s), correct a mesh orientation when defining the interface",
		e.Interface, e.Reason)
}

// OutermostDomainError is raised when the number of domains lying outside of all
// their interfaces is not exactly one.
type OutermostDomainError struct {
	Count int
}

func (e *OutermostDomainError) Error() string {
	return fmt.Sprintf("expected exactly one outermost domain, found %d", e.Count)
}
