package main

import (
	"github.com/locvowork/company_reporting/internal/apperror"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

// exitCode maps a pipeline error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if apperror.GetCode(err) == apperror.CodeValidation {
		return exitValidation
	}
	return exitFailure
}
