package transpiler

import "errors"

var (
	// ErrInvalidSource is returned when the module text cannot be parsed at all.
	ErrInvalidSource = errors.New("invalid source")
	// ErrDeclarationNotFound is returned when no default-exported class carries
	// the @Component decorator.
	ErrDeclarationNotFound = errors.New("no default exported @Component class found")
	// ErrUnresolvedName is returned when the component has neither a name
	// option nor a class identifier.
	ErrUnresolvedName = errors.New("component name cannot be resolved")
	// ErrUnresolvedTemplate is returned when neither template markup nor an
	// inline template option is available.
	ErrUnresolvedTemplate = errors.New("component template cannot be resolved")
	// ErrLowering is returned when the assembled statement fails to print.
	ErrLowering = errors.New("lowering failed")
)
