package reportingapi

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when the build server has no such build.
type NotFoundError struct {
	Identity BuildIdentity
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("build %s not found", e.Identity)
}

// IsNotFound reports whether any error in err's chain is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
