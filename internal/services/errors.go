package services

import "errors"

var (
	errQueryRequired    = errors.New("Query is required")
	errCourseIDRequired = errors.New("Course ID is required")
	errUserIDRequired   = errors.New("User ID is required")
)
