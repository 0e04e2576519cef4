package main

// Exit codes for the CLI
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitAuthFailed   = 2
	ExitConfigError  = 3
	ExitTaskNotFound = 4
	ExitInvalidInput = 5
)
