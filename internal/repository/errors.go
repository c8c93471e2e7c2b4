package repository

import "errors"

// ErrDuplicateUsername is returned by UserRepository.Create when the
// unique constraint on username rejects the insert.
var ErrDuplicateUsername = errors.New("username already exists")
