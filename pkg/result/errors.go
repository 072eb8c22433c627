package result

import "errors"

// Input-contract violations. Any of these means the document was produced by an
// incompatible or broken matcher; callers abort instead of rendering partial output.
var (
	ErrUnknownNode      = errors.New("unknown node type")
	ErrUnknownStatement = errors.New("unknown statement type")
	ErrUnknownFeature   = errors.New("unknown feature type")
	ErrOddBytes         = errors.New("bytes feature has odd length")
	ErrFileScopeMatch   = errors.New("file scope rule must have exactly one match")
)
