package main

// Exit codes for slackr commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration write error
	ExitMissingToken = 3 // No API token in environment or config
)
