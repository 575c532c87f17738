package active_directory

import "errors"

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrGroupNotFound          = errors.New("group not found")
	ErrInvalidTargetContainer = errors.New("invalid target container")
)
