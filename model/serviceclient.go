package model

import "time"

// ServiceClient is the transfer shape for "service clients": identities that
// hold, or are eligible to be granted, access rights on a service. The same
// shape is used for candidate search results (RightsGiven unset) and for
// endpoint ACL listings (RightsGiven set).
type ServiceClient struct {
	Subject XRoadID `json:"subject_id"`

	// MemberName is the directory display name, set for members and subsystems.
	MemberName string `json:"member_name,omitempty"`

	// Description is the directory description, set for global groups.
	Description string `json:"description,omitempty"`

	// Local-group enrichment, set when Subject is a local group.
	LocalGroupUUID        string `json:"local_group_id,omitempty"`
	LocalGroupCode        string `json:"local_group_code,omitempty"`
	LocalGroupDescription string `json:"local_group_description,omitempty"`

	RightsGiven *time.Time `json:"rights_given,omitempty"`
}
