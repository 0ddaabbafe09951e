package world

import "errors"

var (
	ErrInvalidLevelID       = errors.New("world: invalid level id")
	ErrTransitionInProgress = errors.New("world: transition in progress")
	ErrNoInteractable       = errors.New("world: no interactable at position")
)
