package model

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown accessibility category")
	ErrNegativeCount   = errors.New("negative category count")
)
