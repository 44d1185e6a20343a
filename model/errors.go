package model

import "fmt"

var (
	ErrAlreadyExists        = fmt.Errorf("already exists")
	ErrClientNotFound       = fmt.Errorf("client not found")
	ErrServiceNotFound      = fmt.Errorf("service not found")
	ErrEndpointNotFound     = fmt.Errorf("endpoint not found")
	ErrLocalGroupNotFound   = fmt.Errorf("local group not found")
	ErrIdentifierNotFound   = fmt.Errorf("identifier not found")
	ErrDuplicateAccessRight = fmt.Errorf("duplicate access right")
	ErrAccessRightNotFound  = fmt.Errorf("access right not found")

	// ErrDirectoryUnavailable marks a transient failure reading the global
	// configuration. Existence checks surface it; listing paths absorb it.
	ErrDirectoryUnavailable = fmt.Errorf("global configuration unavailable")

	ErrDuplicateLocalGroup       = fmt.Errorf("local group already exists")
	ErrDuplicateLocalGroupMember = fmt.Errorf("local group member already exists")
	ErrLocalGroupMemberNotFound  = fmt.Errorf("local group member not found")
)
