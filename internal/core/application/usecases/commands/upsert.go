package commands

import (
	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

type saveMode int

const (
	modeCreate saveMode = iota
	modeUpdate
)

// insertOrReplace decides how a keyed record is saved. Internal callers get
// a conflict for a create of an existing key or an update of a missing one;
// external callers upsert.
func insertOrReplace(paramName, key string, exists bool, mode saveMode, caller kernel.Caller) (bool, error) {
	if !caller.IsExternal() {
		if mode == modeCreate && exists {
			return false, errs.NewAlreadyExistsError(paramName, key)
		}
		if mode == modeUpdate && !exists {
			return false, errs.NewDoesNotExistError(paramName, key)
		}
	}
	return !exists, nil
}
