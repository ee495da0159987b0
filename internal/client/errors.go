package client

import "errors"

var ErrNotATerminal = errors.New("stdout is not a terminal")
