// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import "fmt"

// Exit codes for the dandidash CLI.
const (
	ExitOK           = 0 // Success.
	ExitFailure      = 1 // Invalid arguments or a failed build.
	ExitVerifyFailed = 2 // The page references missing plot files.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitVerifyFailed:
			msg = "dandidash: verification failed"
		default:
			msg = "dandidash: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}
