package codec

import "errors"

// ErrInvalidStructure reports a structured value whose shape has no XML
// representation under the codec's conventions: an attribute value that
// is not scalar, or a sequence nested directly inside a sequence.
var ErrInvalidStructure = errors.New("invalid structure")
