package locating

import "errors"

var ErrNameRequired = errors.New("name is required")
