package cookie

import "errors"

// ErrEmptyName is returned by Validate for cookies without a name.
var ErrEmptyName = errors.New("cookie: name is required")
