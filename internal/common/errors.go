package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// pending-queue specific errors
	ErrorNothingToCommit = errors.New("nothing to commit")
)
