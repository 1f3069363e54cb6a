package services

import (
	"context"
	"testing"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantServiceTestSuite struct {
	suite.Suite
	db          *stubDB
	orgRepo     *MockOrganizationRepository
	domainRepo  *MockOrganizationDomainRepository
	userOrgRepo *MockUserOrganizationRepository
	cacheSvc    *MockCacheService
	service     TenantService
	ctx         context.Context

	orgID   uuid.UUID
	ownerID uuid.UUID
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.db = newStubDB()
	suite.orgRepo = new(MockOrganizationRepository)
	suite.domainRepo = new(MockOrganizationDomainRepository)
	suite.userOrgRepo = new(MockUserOrganizationRepository)
	suite.cacheSvc = new(MockCacheService)
	suite.service = NewTenantService(suite.db, suite.orgRepo, suite.domainRepo, suite.userOrgRepo, suite.cacheSvc)
	suite.ctx = context.Background()
	suite.orgID = uuid.New()
	suite.ownerID = uuid.New()
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.orgRepo.AssertExpectations(suite.T())
	suite.domainRepo.AssertExpectations(suite.T())
	suite.userOrgRepo.AssertExpectations(suite.T())
	suite.cacheSvc.AssertExpectations(suite.T())
}

func (suite *TenantServiceTestSuite) membership(role common.Role) *models.UserOrganization {
	return &models.UserOrganization{
		ID:             uuid.New(),
		UserID:         suite.ownerID,
		OrganizationID: suite.orgID,
		Role:           string(role),
	}
}

func (suite *TenantServiceTestSuite) TestResolveActiveMembership_CacheHit() {
	cached := suite.membership(common.RoleOwner)
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(cached, nil)

	membership, err := suite.service.ResolveActiveMembership(suite.ctx, suite.ownerID)

	suite.NoError(err)
	suite.Equal(cached, membership)
	suite.userOrgRepo.AssertNotCalled(suite.T(), "GetActiveForUser", suite.ctx, suite.ownerID)
}

func (suite *TenantServiceTestSuite) TestResolveActiveMembership_CacheMiss() {
	stored := suite.membership(common.RoleOwner)
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(stored, nil)
	suite.cacheSvc.On("SetMembership", suite.ctx, stored, 5*time.Minute).Return(nil)

	membership, err := suite.service.ResolveActiveMembership(suite.ctx, suite.ownerID)

	suite.NoError(err)
	suite.Equal(stored, membership)
}

func (suite *TenantServiceTestSuite) TestResolveActiveMembership_None() {
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)

	membership, err := suite.service.ResolveActiveMembership(suite.ctx, suite.ownerID)

	suite.Nil(membership)
	suite.ErrorIs(err, common.ErrNoActiveOrganization)
}

func (suite *TenantServiceTestSuite) TestCreateOrganization_Success() {
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.orgRepo.On("GetActiveByName", suite.ctx, "Acme").Return(nil, common.ErrNotFound)
	suite.domainRepo.On("GetByDomain", suite.ctx, "@acme.com").Return(nil, common.ErrNotFound)
	suite.orgRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.Organization")).Return(nil)
	suite.domainRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.OrganizationDomain")).Return(nil)
	suite.userOrgRepo.On("Create", suite.ctx, mock.MatchedBy(func(m *models.UserOrganization) bool {
		return m.UserID == suite.ownerID && m.Role == string(common.RoleOwner)
	})).Return(nil)

	info, err := suite.service.CreateOrganization(suite.ctx, suite.ownerID, &CreateOrganizationRequest{
		Name:    "Acme",
		Domains: []string{"Acme.com"},
	})

	suite.NoError(err)
	suite.Equal("Acme", info.Organization.Name)
	suite.True(info.Organization.Active)
	suite.Equal([]string{"@acme.com"}, info.Domains)
	suite.True(suite.db.tx.committed)
}

func (suite *TenantServiceTestSuite) TestCreateOrganization_OwnerAlreadyHasOne() {
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(suite.membership(common.RoleOwner), nil)

	info, err := suite.service.CreateOrganization(suite.ctx, suite.ownerID, &CreateOrganizationRequest{Name: "Acme"})

	suite.Nil(info)
	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *TenantServiceTestSuite) TestCreateOrganization_NameTaken() {
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.orgRepo.On("GetActiveByName", suite.ctx, "Acme").Return(&models.Organization{ID: uuid.New(), Name: "Acme"}, nil)

	info, err := suite.service.CreateOrganization(suite.ctx, suite.ownerID, &CreateOrganizationRequest{Name: "Acme"})

	suite.Nil(info)
	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *TenantServiceTestSuite) TestCreateOrganization_DomainClaimed() {
	claimed := &models.OrganizationDomain{ID: uuid.New(), OrganizationID: uuid.New(), Domain: "@acme.com"}
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.orgRepo.On("GetActiveByName", suite.ctx, "Acme").Return(nil, common.ErrNotFound)
	suite.domainRepo.On("GetByDomain", suite.ctx, "@acme.com").Return(claimed, nil)

	info, err := suite.service.CreateOrganization(suite.ctx, suite.ownerID, &CreateOrganizationRequest{
		Name:    "Acme",
		Domains: []string{"acme.com"},
	})

	suite.Nil(info)
	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *TenantServiceTestSuite) TestCreateOrganization_MissingName() {
	info, err := suite.service.CreateOrganization(suite.ctx, suite.ownerID, &CreateOrganizationRequest{})

	suite.Nil(info)
	suite.ErrorIs(err, common.ErrValidation)
}

func (suite *TenantServiceTestSuite) TestUpdateOrganization_RenameAndReplaceDomains() {
	membership := suite.membership(common.RoleOwner)
	org := &models.Organization{ID: suite.orgID, Name: "Acme", Active: true}
	current := []*models.OrganizationDomain{{ID: uuid.New(), OrganizationID: suite.orgID, Domain: "@acme.com"}}
	newName := "Acme Industries"
	desired := []string{"acme.io"}

	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(membership, nil)
	suite.orgRepo.On("GetByID", suite.ctx, suite.orgID).Return(org, nil)
	suite.orgRepo.On("GetActiveByName", suite.ctx, newName).Return(nil, common.ErrNotFound)
	suite.domainRepo.On("ListByOrganization", suite.ctx, suite.orgID).Return(current, nil)
	suite.domainRepo.On("GetByDomain", suite.ctx, "@acme.io").Return(nil, common.ErrNotFound)
	suite.orgRepo.On("Update", suite.ctx, org).Return(nil)
	suite.domainRepo.On("Create", suite.ctx, mock.MatchedBy(func(d *models.OrganizationDomain) bool {
		return d.Domain == "@acme.io" && d.OrganizationID == suite.orgID
	})).Return(nil)
	suite.domainRepo.On("Delete", suite.ctx, suite.orgID, "@acme.com").Return(nil)

	info, err := suite.service.UpdateOrganization(suite.ctx, suite.ownerID, &OrganizationPatch{
		Name:    &newName,
		Domains: &desired,
	})

	suite.NoError(err)
	suite.Equal(newName, info.Organization.Name)
	suite.Equal([]string{"@acme.io"}, info.Domains)
	suite.True(suite.db.tx.committed)
}

func (suite *TenantServiceTestSuite) TestUpdateOrganization_NoActiveOrganization() {
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)

	desc := "updated"
	info, err := suite.service.UpdateOrganization(suite.ctx, suite.ownerID, &OrganizationPatch{Description: &desc})

	suite.Nil(info)
	suite.ErrorIs(err, common.ErrNoActiveOrganization)
}

func (suite *TenantServiceTestSuite) TestDeactivateOrganization_Success() {
	membership := suite.membership(common.RoleOwner)
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(membership, nil)
	suite.orgRepo.On("Deactivate", suite.ctx, suite.orgID).Return(nil)
	suite.cacheSvc.On("InvalidateOrganization", suite.ctx, suite.orgID).Return(nil)

	err := suite.service.DeactivateOrganization(suite.ctx, suite.ownerID)

	suite.NoError(err)
}

func (suite *TenantServiceTestSuite) TestDeactivateOrganization_NothingActive() {
	suite.cacheSvc.On("GetMembership", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)
	suite.userOrgRepo.On("GetActiveForUser", suite.ctx, suite.ownerID).Return(nil, common.ErrNotFound)

	err := suite.service.DeactivateOrganization(suite.ctx, suite.ownerID)

	suite.ErrorIs(err, common.ErrNoActiveOrganization)
}

func (suite *TenantServiceTestSuite) TestResolveSignupTarget_Success() {
	record := &models.OrganizationDomain{ID: uuid.New(), OrganizationID: suite.orgID, Domain: "@acme.com"}
	org := &models.Organization{ID: suite.orgID, Name: "Acme", Active: true}
	suite.domainRepo.On("GetByDomain", suite.ctx, "@acme.com").Return(record, nil)
	suite.orgRepo.On("GetByID", suite.ctx, suite.orgID).Return(org, nil)

	got, err := suite.service.ResolveSignupTarget(suite.ctx, "ACME.com")

	suite.NoError(err)
	suite.Equal(suite.orgID, got.ID)
}

func (suite *TenantServiceTestSuite) TestResolveSignupTarget_InactiveOrganization() {
	record := &models.OrganizationDomain{ID: uuid.New(), OrganizationID: suite.orgID, Domain: "@acme.com"}
	org := &models.Organization{ID: suite.orgID, Name: "Acme", Active: false}
	suite.domainRepo.On("GetByDomain", suite.ctx, "@acme.com").Return(record, nil)
	suite.orgRepo.On("GetByID", suite.ctx, suite.orgID).Return(org, nil)

	got, err := suite.service.ResolveSignupTarget(suite.ctx, "acme.com")

	suite.Nil(got)
	suite.ErrorIs(err, common.ErrNotFound)
}

func (suite *TenantServiceTestSuite) TestResolveSignupTarget_UnknownDomain() {
	suite.domainRepo.On("GetByDomain", suite.ctx, "@nowhere.dev").Return(nil, common.ErrNotFound)

	got, err := suite.service.ResolveSignupTarget(suite.ctx, "nowhere.dev")

	suite.Nil(got)
	suite.ErrorIs(err, common.ErrNotFound)
}

func (suite *TenantServiceTestSuite) TestAssignManagerRole_Success() {
	userID := uuid.New()
	member := &models.UserOrganization{ID: uuid.New(), UserID: userID, OrganizationID: suite.orgID, Role: string(common.RoleEmployee)}
	suite.userOrgRepo.On("GetMembership", suite.ctx, suite.orgID, userID).Return(member, nil)
	suite.userOrgRepo.On("UpdateRole", suite.ctx, suite.orgID, userID, string(common.RoleManager)).Return(nil)
	suite.cacheSvc.On("DeleteMembership", suite.ctx, userID).Return(nil)

	err := suite.service.AssignManagerRole(suite.ctx, suite.orgID, userID)

	suite.NoError(err)
}

func (suite *TenantServiceTestSuite) TestAssignManagerRole_OwnerCannotBeDemoted() {
	userID := uuid.New()
	member := &models.UserOrganization{ID: uuid.New(), UserID: userID, OrganizationID: suite.orgID, Role: string(common.RoleOwner)}
	suite.userOrgRepo.On("GetMembership", suite.ctx, suite.orgID, userID).Return(member, nil)

	err := suite.service.AssignManagerRole(suite.ctx, suite.orgID, userID)

	suite.ErrorIs(err, common.ErrValidation)
}

func (suite *TenantServiceTestSuite) TestAssignManagerRole_NotAMember() {
	userID := uuid.New()
	suite.userOrgRepo.On("GetMembership", suite.ctx, suite.orgID, userID).Return(nil, common.ErrNotFound)

	err := suite.service.AssignManagerRole(suite.ctx, suite.orgID, userID)

	suite.ErrorIs(err, common.ErrNotFound)
}

func (suite *TenantServiceTestSuite) TestDismissManager_Success() {
	userID := uuid.New()
	member := &models.UserOrganization{ID: uuid.New(), UserID: userID, OrganizationID: suite.orgID, Role: string(common.RoleManager)}
	suite.userOrgRepo.On("GetMembership", suite.ctx, suite.orgID, userID).Return(member, nil)
	suite.userOrgRepo.On("UpdateRole", suite.ctx, suite.orgID, userID, string(common.RoleEmployee)).Return(nil)
	suite.cacheSvc.On("DeleteMembership", suite.ctx, userID).Return(nil)

	err := suite.service.DismissManager(suite.ctx, suite.orgID, userID)

	suite.NoError(err)
}

func (suite *TenantServiceTestSuite) TestDismissManager_NotAManager() {
	userID := uuid.New()
	member := &models.UserOrganization{ID: uuid.New(), UserID: userID, OrganizationID: suite.orgID, Role: string(common.RoleEmployee)}
	suite.userOrgRepo.On("GetMembership", suite.ctx, suite.orgID, userID).Return(member, nil)

	err := suite.service.DismissManager(suite.ctx, suite.orgID, userID)

	suite.ErrorIs(err, common.ErrNotFound)
}

func (suite *TenantServiceTestSuite) TestListMembers_Success() {
	members := []*models.UserOrganization{suite.membership(common.RoleOwner)}
	suite.userOrgRepo.On("ListMembers", suite.ctx, suite.orgID, 50, 0).Return(members, nil)

	got, err := suite.service.ListMembers(suite.ctx, suite.orgID, 0, 0)

	suite.NoError(err)
	suite.Len(got, 1)
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}
