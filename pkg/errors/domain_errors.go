package custom_error

import (
	"errors"
	"fmt"
)

// InvalidStateError signals a checking transition requested from a status
// that does not allow it. Never retried.
type InvalidStateError struct {
	CheckingID int
	Current    string
	Required   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("checking %d is %s, transition requires %s", e.CheckingID, e.Current, e.Required)
}

// EmptyDocumentError signals a transition attempted on a checking without lines.
type EmptyDocumentError struct {
	CheckingID int
}

func (e *EmptyDocumentError) Error() string {
	return fmt.Sprintf("checking %d has no lines to transition", e.CheckingID)
}

// NotRecoverableError signals a quarantined ledger line whose original record
// no longer exists. The line is abandoned; only manual intervention helps.
type NotRecoverableError struct {
	TransferLineID int
}

func (e *NotRecoverableError) Error() string {
	return fmt.Sprintf("transfer line %d no longer exists", e.TransferLineID)
}

func IsInvalidState(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

func IsEmptyDocument(err error) bool {
	var target *EmptyDocumentError
	return errors.As(err, &target)
}

func IsNotRecoverable(err error) bool {
	var target *NotRecoverableError
	return errors.As(err, &target)
}
