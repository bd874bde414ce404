package usecase

import "errors"

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrAlreadyResolved    = errors.New("suggestion is not pending")
	ErrNoStructuredResult = errors.New("model returned no structured suggestions")
	ErrInvalidPriority    = errors.New("invalid priority level")
)
