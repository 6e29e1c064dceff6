package sqlite

import "errors"

var (
	// ErrSessionNotFound indicates that a session cannot be found.
	ErrSessionNotFound = errors.New("session not found")
	// ErrChatNotFound indicates that a chat cannot be found.
	ErrChatNotFound = errors.New("chat not found")
	// ErrFolderNotFound indicates that a folder cannot be found.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrEmptyName indicates a blank session, chat or folder name.
	ErrEmptyName = errors.New("name cannot be empty")
)
