package service

import (
	"github.com/rs/zerolog"

	"github.com/taskhive/task-system/internal/core/ports"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func registerInput(username, email, password string) ports.RegisterInput {
	return ports.RegisterInput{Username: username, Email: email, Password: password}
}

func profilePatch(username, email *string) ports.ProfilePatch {
	return ports.ProfilePatch{Username: username, Email: email}
}
