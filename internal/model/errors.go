package model

import "errors"

var ErrInvalidFEN = errors.New("invalid FEN")
