package sampling

import (
	"errors"
	"fmt"

	"github.com/notargets/cartprobe/grid"
)

var (
	// ErrOutOfDomain indicates a cell needed by a sample lies outside the
	// addressable range, guide cells included.
	ErrOutOfDomain = errors.New("sampling: index out of domain")

	// ErrUnsupportedOperation indicates the sampler cannot compute the
	// requested quantity.
	ErrUnsupportedOperation = errors.New("sampling: unsupported operation")

	// ErrFieldSize indicates a field buffer shorter than the grid layout.
	ErrFieldSize = errors.New("sampling: field buffer too short")

	// ErrFlagsSize indicates a material flag array that does not match the grid.
	ErrFlagsSize = errors.New("sampling: material flag array size mismatch")
)

// Error records the operation, the sampler and the cell involved in a
// failure. Err is one of the sentinel errors above.
type Error struct {
	Op     string
	Method Method
	Index  grid.Index
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at cell (%d,%d,%d): %v",
		e.Method, e.Op, e.Index.I, e.Index.J, e.Index.K, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
