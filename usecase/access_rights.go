package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

// AccessRightService mutates and resolves the access-control lists of a
// client's endpoints. This service has several methods that return "access
// right holders", a synonym for "service clients".
//
// All mutations run inside the service's transaction: the caller opens one
// write transaction, runs one operation and commits, so every operation is
// all-or-nothing.
type AccessRightService struct {
	db          *memstore.MemoryStoreTxn
	clients     *repo.ClientRepository
	endpoints   *EndpointService
	localGroups *LocalGroupService
	rights      *repo.AccessRightRepository
	identifiers *IdentifierService
	dir         Directory
}

func AccessRights(tx *memstore.MemoryStoreTxn, dir Directory) *AccessRightService {
	return &AccessRightService{
		db:          tx,
		clients:     repo.NewClientRepository(tx),
		endpoints:   Endpoints(tx),
		localGroups: LocalGroups(tx, dir),
		rights:      repo.NewAccessRightRepository(tx),
		identifiers: Identifiers(tx),
		dir:         dir,
	}
}

// AddEndpointAccessRights grants the given subjects access to the endpoint
// and returns the endpoint's complete access-right list, not just the newly
// added entries: consumers refresh their whole view after a mutation.
func (s *AccessRightService) AddEndpointAccessRights(endpointUUID string,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) ([]model.ServiceClient, error) {
	endpoint, err := s.endpoints.GetByUUID(endpointUUID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByUUID(endpoint.ClientUUID)
	if err != nil {
		return nil, err
	}
	return s.addAccessRights(client, endpoint, subjectIDs, localGroupUUIDs)
}

// AddServiceAccessRights grants access on the whole service: the subjects
// are attached to the service's base endpoint.
func (s *AccessRightService) AddServiceAccessRights(clientID model.XRoadID, serviceCode string,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) ([]model.ServiceClient, error) {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	endpoint, err := s.endpoints.GetServiceBaseEndpoint(client, serviceCode)
	if err != nil {
		return nil, err
	}
	return s.addAccessRights(client, endpoint, subjectIDs, localGroupUUIDs)
}

func (s *AccessRightService) addAccessRights(client *model.Client, endpoint *model.Endpoint,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) ([]model.ServiceClient, error) {
	subjects, err := s.mergeSubjectsWithLocalGroups(client, subjectIDs, localGroupUUIDs)
	if err != nil {
		return nil, err
	}

	// One timestamp for the whole batch.
	now := time.Now()

	for _, subject := range subjects {
		right := &model.AccessRight{
			ClientUUID:   client.UUID,
			EndpointUUID: endpoint.UUID,
			Subject:      subject,
			RightsGiven:  now,
		}
		if err := s.rights.Create(right); err != nil {
			return nil, err
		}
	}

	return s.GetEndpointServiceClients(client, endpoint)
}

// mergeSubjectsWithLocalGroups validates the requested identities and folds
// them into one deduplicated subject set backed by persisted identifier rows.
// Directory validation happens before anything is persisted: a set with one
// unknown identity leaves no orphaned rows behind.
func (s *AccessRightService) mergeSubjectsWithLocalGroups(client *model.Client,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) ([]model.XRoadID, error) {
	subsystems := []model.XRoadID{}
	globalGroups := []model.XRoadID{}
	for _, id := range subjectIDs {
		switch id.ObjectType {
		case model.Subsystem:
			subsystems = append(subsystems, id)
		case model.GlobalGroup:
			globalGroups = append(globalGroups, id)
		}
		// Members and directly passed local groups cannot be subjects and
		// are dropped; local groups arrive via localGroupUUIDs.
	}

	merged := []model.XRoadID{}
	seen := map[string]struct{}{}
	appendUnique := func(ids []model.XRoadID) {
		for _, id := range ids {
			if _, ok := seen[id.Key()]; ok {
				continue
			}
			seen[id.Key()] = struct{}{}
			merged = append(merged, id)
		}
	}

	if len(subsystems) > 0 {
		persisted, err := s.getOrPersistVerified(subsystems, s.dir.MembersExist)
		if err != nil {
			return nil, err
		}
		appendUnique(persisted)
	}
	if len(globalGroups) > 0 {
		persisted, err := s.getOrPersistVerified(globalGroups, s.dir.GlobalGroupsExist)
		if err != nil {
			return nil, err
		}
		appendUnique(persisted)
	}

	if len(localGroupUUIDs) > 0 {
		groupIDs, err := s.resolveOwnedLocalGroups(client, localGroupUUIDs)
		if err != nil {
			return nil, err
		}
		persisted, err := s.identifiers.GetOrPersist(groupIDs)
		if err != nil {
			return nil, err
		}
		appendUnique(persisted)
	}

	return merged, nil
}

// resolveOwnedLocalGroups maps group surrogate ids to their identities,
// requiring every group to belong to the client. The check guards grant and
// revoke alike: group codes are only unique per client, so a foreign group id
// must never reach another client's entries through a code collision.
func (s *AccessRightService) resolveOwnedLocalGroups(client *model.Client, localGroupUUIDs []string) ([]model.XRoadID, error) {
	ids := make([]model.XRoadID, 0, len(localGroupUUIDs))
	for _, groupUUID := range localGroupUUIDs {
		group, err := s.localGroups.GetByUUID(groupUUID)
		if err != nil {
			return nil, err
		}
		if group.ClientUUID != client.UUID {
			return nil, fmt.Errorf("local group %q does not belong to client %s: %w",
				group.GroupCode, client.ID().ShortString(), model.ErrLocalGroupNotFound)
		}
		ids = append(ids, group.ID())
	}
	return ids, nil
}

// getOrPersistVerified checks the whole set against the directory, then
// upserts identifier rows. Verify-before-persist ordering is mandatory.
func (s *AccessRightService) getOrPersistVerified(ids []model.XRoadID,
	exist func([]model.XRoadID) (bool, error)) ([]model.XRoadID, error) {
	ok, err := exist(ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrIdentifierNotFound
	}
	return s.identifiers.GetOrPersist(ids)
}

// DeleteEndpointAccessRights revokes the subjects' rights on the endpoint.
// Every requested subject must currently hold a right, otherwise nothing is
// removed.
func (s *AccessRightService) DeleteEndpointAccessRights(endpointUUID string,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) error {
	endpoint, err := s.endpoints.GetByUUID(endpointUUID)
	if err != nil {
		return err
	}
	client, err := s.clients.GetByUUID(endpoint.ClientUUID)
	if err != nil {
		return err
	}
	return s.deleteAccessRights(client, endpoint, subjectIDs, localGroupUUIDs)
}

// DeleteServiceAccessRights revokes rights on the service's base endpoint.
func (s *AccessRightService) DeleteServiceAccessRights(clientID model.XRoadID, serviceCode string,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) error {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		return err
	}
	endpoint, err := s.endpoints.GetServiceBaseEndpoint(client, serviceCode)
	if err != nil {
		return err
	}
	return s.deleteAccessRights(client, endpoint, subjectIDs, localGroupUUIDs)
}

func (s *AccessRightService) deleteAccessRights(client *model.Client, endpoint *model.Endpoint,
	subjectIDs []model.XRoadID, localGroupUUIDs []string) error {
	remove := map[string]struct{}{}
	for _, id := range subjectIDs {
		remove[id.Key()] = struct{}{}
	}
	// No directory validation on removal: a right may be revoked for an
	// identity that has since vanished from the directory.
	if len(localGroupUUIDs) > 0 {
		groupIDs, err := s.resolveOwnedLocalGroups(client, localGroupUUIDs)
		if err != nil {
			return err
		}
		for _, id := range groupIDs {
			remove[id.Key()] = struct{}{}
		}
	}

	existing, err := s.rights.ListByEndpoint(endpoint.UUID)
	if err != nil {
		return err
	}
	matched := []*model.AccessRight{}
	for _, right := range existing {
		if _, ok := remove[right.SubjectKey]; ok {
			matched = append(matched, right)
		}
	}
	if len(matched) != len(remove) {
		return fmt.Errorf("some subjects hold no access right on endpoint %s: %w",
			endpoint.UUID, model.ErrAccessRightNotFound)
	}

	for _, right := range matched {
		if err := s.rights.Delete(right); err != nil {
			return err
		}
	}
	return nil
}

// GetEndpointAccessRights resolves the endpoint and returns its ACL as
// service-client views.
func (s *AccessRightService) GetEndpointAccessRights(endpointUUID string) ([]model.ServiceClient, error) {
	endpoint, err := s.endpoints.GetByUUID(endpointUUID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.GetByUUID(endpoint.ClientUUID)
	if err != nil {
		return nil, err
	}
	return s.GetEndpointServiceClients(client, endpoint)
}

// GetEndpointServiceClients maps the endpoint's access rights to service
// clients, enriched with local-group data and directory display names. The
// group index lives only for this call; the store stays the source of truth.
func (s *AccessRightService) GetEndpointServiceClients(client *model.Client,
	endpoint *model.Endpoint) ([]model.ServiceClient, error) {
	rights, err := s.rights.ListByEndpoint(endpoint.UUID)
	if err != nil {
		return nil, err
	}

	groups, err := s.localGroups.ListByClient(client.UUID)
	if err != nil {
		return nil, err
	}
	groupsByCode := make(map[string]*model.LocalGroupModel, len(groups))
	for _, g := range groups {
		groupsByCode[g.GroupCode] = g
	}

	names := s.memberNames()

	result := make([]model.ServiceClient, 0, len(rights))
	for _, right := range rights {
		given := right.RightsGiven
		sc := model.ServiceClient{
			Subject:     right.Subject,
			RightsGiven: &given,
		}
		if right.Subject.ObjectType == model.LocalGroup {
			if g, ok := groupsByCode[right.Subject.GroupCode]; ok {
				sc.LocalGroupUUID = g.UUID
				sc.LocalGroupCode = g.GroupCode
				sc.LocalGroupDescription = g.Description
			}
		}
		if right.Subject.IsClient() {
			sc.MemberName = names[right.Subject.Key()]
		}
		result = append(result, sc)
	}
	return result, nil
}

// memberNames builds a display-name index from the directory. Enrichment is
// best effort: an unavailable directory yields an empty index, not an error.
func (s *AccessRightService) memberNames() map[string]string {
	members, err := s.dir.Members()
	if err != nil {
		return map[string]string{}
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID.Key()] = m.Name
	}
	return names
}

// FindServiceClientCandidates assembles the candidate universe (directory
// members and global groups plus the client's local groups) and filters it
// with the given search terms. Directory faults degrade to empty partial
// results; an empty final result is valid.
func (s *AccessRightService) FindServiceClientCandidates(clientID model.XRoadID,
	filters ServiceClientFilters) ([]model.ServiceClient, error) {
	client, err := s.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}

	candidates := []model.ServiceClient{}
	candidates = append(candidates, s.globalMemberCandidates()...)
	candidates = append(candidates, s.globalGroupCandidates(filters.Instance)...)

	groups, err := s.localGroups.ListByClient(client.UUID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		candidates = append(candidates, model.ServiceClient{
			Subject:               g.ID(),
			LocalGroupUUID:        g.UUID,
			LocalGroupCode:        g.GroupCode,
			LocalGroupDescription: g.Description,
		})
	}

	match := buildSubjectSearchPredicate(filters)

	result := []model.ServiceClient{}
	for _, c := range candidates {
		if match(c) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *AccessRightService) globalMemberCandidates() []model.ServiceClient {
	members, err := s.dir.Members()
	if err != nil {
		return nil
	}
	candidates := make([]model.ServiceClient, 0, len(members))
	for _, m := range members {
		candidates = append(candidates, model.ServiceClient{
			Subject:    m.ID,
			MemberName: m.Name,
		})
	}
	return candidates
}

// globalGroupCandidates lists directory groups, pre-filtered by instance
// when an instance search term is given. A directory fault for the narrowed
// query means zero global-group results, never a failed search.
func (s *AccessRightService) globalGroupCandidates(instance string) []model.ServiceClient {
	var groups []globalconf.GlobalGroupInfo
	var err error
	if instance != "" {
		instances, ierr := s.dir.InstanceIdentifiers()
		if ierr != nil {
			return nil
		}
		matching := []string{}
		for _, i := range instances {
			if strings.Contains(i, instance) {
				matching = append(matching, i)
			}
		}
		if len(matching) == 0 {
			return nil
		}
		groups, err = s.dir.GlobalGroups(matching...)
	} else {
		groups, err = s.dir.GlobalGroups()
	}
	if err != nil {
		return nil
	}

	candidates := make([]model.ServiceClient, 0, len(groups))
	for _, g := range groups {
		candidates = append(candidates, model.ServiceClient{
			Subject:     g.ID,
			Description: g.Description,
		})
	}
	return candidates
}
