package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"assetra/internal/caching"
	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
)

const membershipCacheTTL = 5 * time.Minute

// CreateOrganizationRequest carries the payload for organization creation.
type CreateOrganizationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Domains     []string `json:"domains"`
}

// OrganizationPatch is a partial update: nil means "leave unchanged". Domains,
// when present, is the complete desired domain set and is applied as a diff.
type OrganizationPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Domains     *[]string `json:"domains,omitempty"`
}

// OrganizationInfo is an organization together with its claimed domains.
type OrganizationInfo struct {
	Organization *models.Organization `json:"organization"`
	Domains      []string             `json:"domains"`
}

// TenantService is the tenant directory: it resolves which organization a
// caller acts for and guards the one-active-organization-per-owner rule.
type TenantService interface {
	ResolveActiveMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error)
	GetOrganizationInfo(ctx context.Context, organizationID uuid.UUID) (*OrganizationInfo, error)
	CreateOrganization(ctx context.Context, ownerID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationInfo, error)
	UpdateOrganization(ctx context.Context, ownerID uuid.UUID, patch *OrganizationPatch) (*OrganizationInfo, error)
	DeactivateOrganization(ctx context.Context, ownerID uuid.UUID) error
	ResolveSignupTarget(ctx context.Context, emailDomain string) (*models.Organization, error)
	AddMember(ctx context.Context, organizationID, userID uuid.UUID, role common.Role) error
	AssignManagerRole(ctx context.Context, organizationID, userID uuid.UUID) error
	DismissManager(ctx context.Context, organizationID, userID uuid.UUID) error
	ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error)
}

type tenantService struct {
	db          repositories.TxStarter
	orgRepo     repositories.OrganizationRepository
	domainRepo  repositories.OrganizationDomainRepository
	userOrgRepo repositories.UserOrganizationRepository
	cacheSvc    caching.CacheService
}

func NewTenantService(db repositories.TxStarter, orgRepo repositories.OrganizationRepository,
	domainRepo repositories.OrganizationDomainRepository, userOrgRepo repositories.UserOrganizationRepository,
	cacheSvc caching.CacheService) TenantService {
	return &tenantService{
		db:          db,
		orgRepo:     orgRepo,
		domainRepo:  domainRepo,
		userOrgRepo: userOrgRepo,
		cacheSvc:    cacheSvc,
	}
}

// ResolveActiveMembership finds the caller's membership in an active
// organization. common.ErrNoActiveOrganization when there is none; callers
// must treat that as "cannot perform organization-scoped action", not as an
// authentication failure.
func (s *tenantService) ResolveActiveMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	if s.cacheSvc != nil {
		if membership, err := s.cacheSvc.GetMembership(ctx, userID); err == nil && membership != nil {
			return membership, nil
		}
	}

	membership, err := s.userOrgRepo.GetActiveForUser(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrNoActiveOrganization
	}
	if err != nil {
		return nil, err
	}

	if s.cacheSvc != nil {
		if err := s.cacheSvc.SetMembership(ctx, membership, membershipCacheTTL); err != nil {
			log.Printf("Failed to cache membership for user %s: %v", userID, err)
		}
	}
	return membership, nil
}

func (s *tenantService) GetOrganizationInfo(ctx context.Context, organizationID uuid.UUID) (*OrganizationInfo, error) {
	org, err := s.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	domains, err := s.domainRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return &OrganizationInfo{Organization: org, Domains: domainStrings(domains)}, nil
}

// CreateOrganization inserts the organization, its domains and the owner's
// membership as one transaction. Partial failure rolls everything back.
func (s *tenantService) CreateOrganization(ctx context.Context, ownerID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationInfo, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	domains, err := normalizeDomains(req.Domains)
	if err != nil {
		return nil, err
	}

	// Owner may operate at most one active organization.
	if _, err := s.userOrgRepo.GetActiveForUser(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("%w: user already has an active organization", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if _, err := s.orgRepo.GetActiveByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("%w: organization name %q is already in use", common.ErrConflict, req.Name)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	for _, domain := range domains {
		if _, err := s.domainRepo.GetByDomain(ctx, domain); err == nil {
			return nil, fmt.Errorf("%w: domain %s is already claimed", common.ErrConflict, domain)
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	org := &models.Organization{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.orgRepo.WithTx(tx).Create(ctx, org); err != nil {
		return nil, err
	}
	txDomains := s.domainRepo.WithTx(tx)
	for _, domain := range domains {
		d := &models.OrganizationDomain{ID: uuid.New(), OrganizationID: org.ID, Domain: domain}
		if err := txDomains.Create(ctx, d); err != nil {
			return nil, err
		}
	}
	membership := &models.UserOrganization{
		ID:             uuid.New(),
		UserID:         ownerID,
		OrganizationID: org.ID,
		Role:           string(common.RoleOwner),
	}
	if err := s.userOrgRepo.WithTx(tx).Create(ctx, membership); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &OrganizationInfo{Organization: org, Domains: domains}, nil
}

// UpdateOrganization applies a partial patch; a domain list replaces the
// claimed set via insert/remove diff, untouched domains are left alone.
func (s *tenantService) UpdateOrganization(ctx context.Context, ownerID uuid.UUID, patch *OrganizationPatch) (*OrganizationInfo, error) {
	membership, err := s.ResolveActiveMembership(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, membership.OrganizationID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := common.ValidateRequiredString(*patch.Name, "name"); err != nil {
			return nil, err
		}
		if *patch.Name != org.Name {
			if existing, err := s.orgRepo.GetActiveByName(ctx, *patch.Name); err == nil && existing.ID != org.ID {
				return nil, fmt.Errorf("%w: organization name %q is already in use", common.ErrConflict, *patch.Name)
			} else if err != nil && !errors.Is(err, common.ErrNotFound) {
				return nil, err
			}
		}
		org.Name = *patch.Name
	}
	if patch.Description != nil {
		org.Description = *patch.Description
	}

	var toAdd, toRemove []string
	currentDomains, err := s.domainRepo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	current := domainStrings(currentDomains)

	if patch.Domains != nil {
		desired, err := normalizeDomains(*patch.Domains)
		if err != nil {
			return nil, err
		}
		toAdd, toRemove = diffDomains(current, desired)
		for _, domain := range toAdd {
			if claimed, err := s.domainRepo.GetByDomain(ctx, domain); err == nil && claimed.OrganizationID != org.ID {
				return nil, fmt.Errorf("%w: domain %s is already claimed", common.ErrConflict, domain)
			} else if err != nil && !errors.Is(err, common.ErrNotFound) {
				return nil, err
			}
		}
		current = desired
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.orgRepo.WithTx(tx).Update(ctx, org); err != nil {
		return nil, err
	}
	txDomains := s.domainRepo.WithTx(tx)
	for _, domain := range toAdd {
		d := &models.OrganizationDomain{ID: uuid.New(), OrganizationID: org.ID, Domain: domain}
		if err := txDomains.Create(ctx, d); err != nil {
			return nil, err
		}
	}
	for _, domain := range toRemove {
		if err := txDomains.Delete(ctx, org.ID, domain); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &OrganizationInfo{Organization: org, Domains: current}, nil
}

// DeactivateOrganization soft-deletes the owner's active organization.
// Deactivating when nothing is active fails with ErrNoActiveOrganization
// rather than succeeding as a no-op.
func (s *tenantService) DeactivateOrganization(ctx context.Context, ownerID uuid.UUID) error {
	membership, err := s.ResolveActiveMembership(ctx, ownerID)
	if err != nil {
		return err
	}
	if err := s.orgRepo.Deactivate(ctx, membership.OrganizationID); err != nil {
		return err
	}
	if s.cacheSvc != nil {
		if err := s.cacheSvc.InvalidateOrganization(ctx, membership.OrganizationID); err != nil {
			log.Printf("Failed to invalidate membership cache for organization %s: %v", membership.OrganizationID, err)
		}
	}
	return nil
}

// ResolveSignupTarget maps an email domain to the single organization that
// claimed it. The organization must still be active.
func (s *tenantService) ResolveSignupTarget(ctx context.Context, emailDomain string) (*models.Organization, error) {
	domain := common.NormalizeDomain(emailDomain)
	if domain == "" {
		return nil, fmt.Errorf("%w: email domain is required", common.ErrValidation)
	}
	record, err := s.domainRepo.GetByDomain(ctx, domain)
	if err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, record.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !org.Active {
		return nil, common.ErrNotFound
	}
	return org, nil
}

func (s *tenantService) AddMember(ctx context.Context, organizationID, userID uuid.UUID, role common.Role) error {
	membership := &models.UserOrganization{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: organizationID,
		Role:           string(role),
	}
	return s.userOrgRepo.Create(ctx, membership)
}

// AssignManagerRole promotes an existing member to asset manager.
func (s *tenantService) AssignManagerRole(ctx context.Context, organizationID, userID uuid.UUID) error {
	membership, err := s.userOrgRepo.GetMembership(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	if membership.Role == string(common.RoleOwner) {
		return fmt.Errorf("%w: the organization owner cannot be demoted to manager", common.ErrValidation)
	}
	if err := s.userOrgRepo.UpdateRole(ctx, organizationID, userID, string(common.RoleManager)); err != nil {
		return err
	}
	s.dropCachedMembership(ctx, userID)
	return nil
}

// DismissManager demotes a manager back to employee. Dismissing a user who is
// not currently a manager is a NotFound, not a no-op.
func (s *tenantService) DismissManager(ctx context.Context, organizationID, userID uuid.UUID) error {
	membership, err := s.userOrgRepo.GetMembership(ctx, organizationID, userID)
	if err != nil {
		return err
	}
	if membership.Role != string(common.RoleManager) {
		return fmt.Errorf("%w: user is not an asset manager", common.ErrNotFound)
	}
	if err := s.userOrgRepo.UpdateRole(ctx, organizationID, userID, string(common.RoleEmployee)); err != nil {
		return err
	}
	s.dropCachedMembership(ctx, userID)
	return nil
}

func (s *tenantService) ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.userOrgRepo.ListMembers(ctx, organizationID, limit, offset)
}

func (s *tenantService) dropCachedMembership(ctx context.Context, userID uuid.UUID) {
	if s.cacheSvc == nil {
		return
	}
	if err := s.cacheSvc.DeleteMembership(ctx, userID); err != nil {
		log.Printf("Failed to drop cached membership for user %s: %v", userID, err)
	}
}

func domainStrings(domains []*models.OrganizationDomain) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		out = append(out, d.Domain)
	}
	return out
}

func normalizeDomains(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		domain := common.NormalizeDomain(d)
		if domain == "" || domain == "@" {
			return nil, fmt.Errorf("%w: invalid domain %q", common.ErrValidation, d)
		}
		if seen[domain] {
			continue
		}
		seen[domain] = true
		out = append(out, domain)
	}
	return out, nil
}

// diffDomains computes the insert/remove sets turning current into desired.
func diffDomains(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]bool, len(current))
	for _, d := range current {
		currentSet[d] = true
	}
	desiredSet := make(map[string]bool, len(desired))
	for _, d := range desired {
		desiredSet[d] = true
		if !currentSet[d] {
			toAdd = append(toAdd, d)
		}
	}
	for _, d := range current {
		if !desiredSet[d] {
			toRemove = append(toRemove, d)
		}
	}
	return toAdd, toRemove
}
