package encryption

import "errors"

// ErrSameFile is returned when the output path would overwrite the input.
var ErrSameFile = errors.New("output path equals input path")
