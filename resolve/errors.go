package resolve

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDefinition is matched by every *MissingDefinitionError.
	ErrMissingDefinition = errors.New("missing definition")
	// ErrCyclicDefinition is matched by every *CyclicDefinitionError.
	ErrCyclicDefinition = errors.New("cyclic definition")
)

// MissingDefinitionError reports a name used inside a definition that no
// strategy could bind. Referrer is the definition that used it.
type MissingDefinitionError struct {
	Name     string
	Referrer string
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("missing definition for %q (used by %q)", e.Name, e.Referrer)
}

func (e *MissingDefinitionError) Is(target error) bool { return target == ErrMissingDefinition }

// CyclicDefinitionError reports a definition that refers back to itself.
// Cycle starts and ends with the same name.
type CyclicDefinitionError struct {
	Cycle []string
}

func (e *CyclicDefinitionError) Error() string {
	return fmt.Sprintf("cyclic definition: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CyclicDefinitionError) Is(target error) bool { return target == ErrCyclicDefinition }
