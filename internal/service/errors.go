package service

import "errors"

var (
	ErrValidation = errors.New("validation")  // 400
	ErrForbidden  = errors.New("forbidden")   // 403
	ErrNotFound   = errors.New("not found")   // 404
)
