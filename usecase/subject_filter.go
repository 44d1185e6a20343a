package usecase

import (
	"strings"

	"github.com/openxroad/adminapi/model"
)

// ServiceClientFilters are the search terms of a candidate search. An empty
// term matches everything; set terms must all agree.
type ServiceClientFilters struct {
	SubjectType       model.XRoadObjectType
	NameOrDescription string
	Instance          string
	MemberClass       string
	MemberGroupCode   string
	SubsystemCode     string
}

// subjectPredicate is one stage of the filter chain: a pure function over a
// candidate. Stages are combined with logical AND, left to right.
type subjectPredicate func(model.ServiceClient) bool

// buildSubjectSearchPredicate composes the chain for the given terms. The
// member exclusion stage is unconditional: bare members can never hold
// access rights, only their subsystems and groups can.
func buildSubjectSearchPredicate(filters ServiceClientFilters) subjectPredicate {
	stages := []subjectPredicate{
		func(c model.ServiceClient) bool {
			return c.Subject.ObjectType != model.Member
		},
	}

	if filters.SubjectType != "" {
		stages = append(stages, func(c model.ServiceClient) bool {
			return c.Subject.ObjectType == filters.SubjectType
		})
	}
	if filters.NameOrDescription != "" {
		stages = append(stages, nameOrDescriptionStage(filters.NameOrDescription))
	}
	if filters.Instance != "" {
		stages = append(stages, instanceStage(filters.Instance))
	}
	if filters.MemberClass != "" {
		stages = append(stages, memberClassStage(filters.MemberClass))
	}
	if filters.SubsystemCode != "" {
		stages = append(stages, subsystemCodeStage(filters.SubsystemCode))
	}
	if filters.MemberGroupCode != "" {
		stages = append(stages, memberGroupCodeStage(filters.MemberGroupCode))
	}

	return func(c model.ServiceClient) bool {
		for _, stage := range stages {
			if !stage(c) {
				return false
			}
		}
		return true
	}
}

// Matches the member display name, or the group description when the subject
// is a local group. Global groups are not matched by this term.
func nameOrDescriptionStage(term string) subjectPredicate {
	return func(c model.ServiceClient) bool {
		if containsIgnoreCase(c.MemberName, term) {
			return true
		}
		return c.Subject.ObjectType == model.LocalGroup &&
			containsIgnoreCase(c.LocalGroupDescription, term)
	}
}

// Local groups carry no X-Road instance and always pass this stage.
func instanceStage(term string) subjectPredicate {
	return func(c model.ServiceClient) bool {
		if c.Subject.ObjectType == model.LocalGroup {
			return true
		}
		return containsIgnoreCase(c.Subject.XRoadInstance, term)
	}
}

func memberClassStage(term string) subjectPredicate {
	return func(c model.ServiceClient) bool {
		return c.Subject.IsClient() && containsIgnoreCase(c.Subject.MemberClass, term)
	}
}

func subsystemCodeStage(term string) subjectPredicate {
	return func(c model.ServiceClient) bool {
		return c.Subject.ObjectType == model.Subsystem &&
			containsIgnoreCase(c.Subject.SubsystemCode, term)
	}
}

// Matches member code for client-shaped subjects and group code for global
// and local groups.
func memberGroupCodeStage(term string) subjectPredicate {
	return func(c model.ServiceClient) bool {
		switch {
		case c.Subject.IsClient():
			return containsIgnoreCase(c.Subject.MemberCode, term)
		case c.Subject.ObjectType == model.GlobalGroup,
			c.Subject.ObjectType == model.LocalGroup:
			return containsIgnoreCase(c.Subject.GroupCode, term)
		}
		return false
	}
}

func containsIgnoreCase(s, substr string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
