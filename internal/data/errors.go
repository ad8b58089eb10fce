package data

import "errors"

// Validation rejections. Operations returning one of these leave state unchanged.
var (
	ErrTagEmpty       = errors.New("tag name is empty")
	ErrTagExists      = errors.New("tag already exists")
	ErrTagNotFound    = errors.New("tag not found")
	ErrTagUnchanged   = errors.New("new tag name equals the old one")
	ErrNameEmpty      = errors.New("name is empty")
	ErrAsanaNotFound  = errors.New("asana not found")
	ErrFlowNotFound   = errors.New("flow not found")
	ErrNotMember      = errors.New("asana is not in the flow")
	ErrIndexRange     = errors.New("index out of range")
	ErrNotEditing     = errors.New("nothing is being edited")
	ErrNotImage       = errors.New("file is not an image")
	ErrInvalidLibrary = errors.New("invalid library document")
)
