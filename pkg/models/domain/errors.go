package domain

import "github.com/rotisserie/eris"

var (
	ErrNotFound          = eris.New("not found")
	ErrInvalidCommand    = eris.New("invalid command")
	ErrInvalidTransition = eris.New("invalid transition")
	ErrAlreadyRunning    = eris.New("already running")
)
