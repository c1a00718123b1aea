// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"fmt"
)

var (
	ValidationErrorNoRoles           = errors.New("at least one role is required")
	ValidationErrorEmptyRoleName     = errors.New("role name cannot be empty")
	ValidationErrorDuplicateRoleName = errors.New("role names should be unique within a game")
	ValidationErrorSlotCount         = errors.New("role slot count should be at least 1")
	ValidationErrorMissingEntryID    = errors.New("queue entry id cannot be empty")
	ValidationErrorMissingOwnerID    = errors.New("queue entry owner id cannot be empty")
	ValidationErrorMissingRole       = errors.New("queue entry role cannot be empty")
	ValidationErrorInvalidScore      = errors.New("queue entry score should be a finite number")
	ValidationErrorInvalidJoinedAt   = errors.New("queue entry joined at should be a timestamp")
	ValidationErrorInvalidRules      = errors.New("sampler rules are invalid")
)

var validationErrorCodeMap = map[error]int{
	ValidationErrorNoRoles:           510201,
	ValidationErrorEmptyRoleName:     510202,
	ValidationErrorDuplicateRoleName: 510203,
	ValidationErrorSlotCount:         510204,
	ValidationErrorMissingEntryID:    510211,
	ValidationErrorMissingOwnerID:    510212,
	ValidationErrorMissingRole:       510213,
	ValidationErrorInvalidScore:      510214,
	ValidationErrorInvalidJoinedAt:   510215,
	ValidationErrorInvalidRules:      510221,
}

// ValidationError ties a validation failure to the offending field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ValidationErrorCode(err error) int {
	for known, code := range validationErrorCodeMap {
		if errors.Is(err, known) {
			return code
		}
	}
	return 20002
}
