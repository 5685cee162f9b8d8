// Package repositories provides the MySQL-backed stores for tasks and notes.
// Every statement is scoped by the owning user id; a row is reachable only
// through its (id, user_id) pair.
package repositories

import "errors"

// ErrTaskNotFound is returned when no task matches the (id, owner) pair.
// A task owned by another user is reported identically to a missing one.
var ErrTaskNotFound = errors.New("task not found")

// ErrNoteNotFound is the note equivalent of ErrTaskNotFound.
var ErrNoteNotFound = errors.New("note not found")
