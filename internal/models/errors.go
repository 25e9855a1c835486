package models

import "errors"

// Sentinel errors for record lookups.
var ErrRecordNotFound = errors.New("audit record not found")
