package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")
var ErrResourceNotFound = errors.New("resource not found")
var ErrGrantNotFound = errors.New("share grant not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrToolNotFound = errors.New("tool not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrSelfDemotion = errors.New("cannot demote own account")
var ErrValidation = errors.New("validation failed")
