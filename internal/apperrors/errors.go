package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates an illegal lifecycle transition, such as voiding
// an entry that was never posted.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrAlreadyPosted indicates a posting attempt on an entry that is not in draft.
var ErrAlreadyPosted = errors.New("journal entry is already posted")

// ErrPeriodClosed indicates the entry date falls inside a closed fiscal period.
var ErrPeriodClosed = errors.New("fiscal period is closed for posting")

// ErrAlreadyClosed indicates a close attempt on a period that is not open.
var ErrAlreadyClosed = errors.New("fiscal period is already closed")

// ErrConflict indicates a lost race on a locked resource; the caller should
// retry the whole operation.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrInternal indicates an unexpected failure that the caller cannot recover from.
var ErrInternal = errors.New("internal error")
