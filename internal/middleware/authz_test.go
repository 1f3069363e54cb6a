package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockTenantService struct {
	mock.Mock
}

func (m *MockTenantService) ResolveActiveMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserOrganization), args.Error(1)
}

func (m *MockTenantService) GetOrganizationInfo(ctx context.Context, organizationID uuid.UUID) (*services.OrganizationInfo, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OrganizationInfo), args.Error(1)
}

func (m *MockTenantService) CreateOrganization(ctx context.Context, ownerID uuid.UUID, req *services.CreateOrganizationRequest) (*services.OrganizationInfo, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OrganizationInfo), args.Error(1)
}

func (m *MockTenantService) UpdateOrganization(ctx context.Context, ownerID uuid.UUID, patch *services.OrganizationPatch) (*services.OrganizationInfo, error) {
	args := m.Called(ctx, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OrganizationInfo), args.Error(1)
}

func (m *MockTenantService) DeactivateOrganization(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockTenantService) ResolveSignupTarget(ctx context.Context, emailDomain string) (*models.Organization, error) {
	args := m.Called(ctx, emailDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockTenantService) AddMember(ctx context.Context, organizationID, userID uuid.UUID, role common.Role) error {
	args := m.Called(ctx, organizationID, userID, role)
	return args.Error(0)
}

func (m *MockTenantService) AssignManagerRole(ctx context.Context, organizationID, userID uuid.UUID) error {
	args := m.Called(ctx, organizationID, userID)
	return args.Error(0)
}

func (m *MockTenantService) DismissManager(ctx context.Context, organizationID, userID uuid.UUID) error {
	args := m.Called(ctx, organizationID, userID)
	return args.Error(0)
}

func (m *MockTenantService) ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserOrganization), args.Error(1)
}

type AuthorizerTestSuite struct {
	suite.Suite
	tenantSvc  *MockTenantService
	authorizer *Authorizer
	echo       *echo.Echo

	userID uuid.UUID
	orgID  uuid.UUID
}

func (suite *AuthorizerTestSuite) SetupTest() {
	suite.tenantSvc = new(MockTenantService)
	suite.authorizer = NewAuthorizer(suite.tenantSvc)
	suite.echo = echo.New()
	suite.userID = uuid.New()
	suite.orgID = uuid.New()
}

func (suite *AuthorizerTestSuite) TearDownTest() {
	suite.tenantSvc.AssertExpectations(suite.T())
}

// invoke runs the policy gate around a handler that records the request
// context it saw, simulating a request that already passed JWT auth.
func (suite *AuthorizerTestSuite) invoke(policy Policy, authenticated bool) (*httptest.ResponseRecorder, context.Context) {
	req := httptest.NewRequest(http.MethodGet, "/assets", nil)
	if authenticated {
		req = req.WithContext(context.WithValue(req.Context(), common.UserIDKey, suite.userID))
	}
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)

	var seenCtx context.Context
	handler := suite.authorizer.Require(policy)(func(c echo.Context) error {
		seenCtx = c.Request().Context()
		return common.Respond(c, http.StatusOK, "ok")
	})
	suite.NoError(handler(c))
	return rec, seenCtx
}

func (suite *AuthorizerTestSuite) envelope(rec *httptest.ResponseRecorder) common.Envelope {
	var env common.Envelope
	suite.NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func (suite *AuthorizerTestSuite) membership(role common.Role) *models.UserOrganization {
	return &models.UserOrganization{
		UserID:         suite.userID,
		OrganizationID: suite.orgID,
		Role:           string(role),
	}
}

func (suite *AuthorizerTestSuite) TestRequire_NotAuthenticated() {
	rec, _ := suite.invoke(AnyMember, false)

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Equal(http.StatusUnauthorized, suite.envelope(rec).Status)
}

func (suite *AuthorizerTestSuite) TestRequire_NoActiveOrganization() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(nil, common.ErrNoActiveOrganization)

	rec, _ := suite.invoke(AnyMember, true)

	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
	suite.Equal(http.StatusMethodNotAllowed, suite.envelope(rec).Status)
}

func (suite *AuthorizerTestSuite) TestRequire_MembershipLookupError() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(nil, context.DeadlineExceeded)

	rec, _ := suite.invoke(AnyMember, true)

	suite.Equal(http.StatusInternalServerError, rec.Code)
}

func (suite *AuthorizerTestSuite) TestRequire_AnyMemberAllowsEmployee() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(suite.membership(common.RoleEmployee), nil)

	rec, seenCtx := suite.invoke(AnyMember, true)

	suite.Equal(http.StatusOK, rec.Code)
	orgID, ok := common.GetOrganizationIDFromContext(seenCtx)
	suite.True(ok)
	suite.Equal(suite.orgID, orgID)
	role, ok := common.GetRoleFromContext(seenCtx)
	suite.True(ok)
	suite.Equal(common.RoleEmployee, role)
}

func (suite *AuthorizerTestSuite) TestRequire_ManagerPassesManagerOnly() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(suite.membership(common.RoleManager), nil)

	rec, _ := suite.invoke(ManagerOnly, true)

	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *AuthorizerTestSuite) TestRequire_EmployeeDeniedManagerOnly() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(suite.membership(common.RoleEmployee), nil)

	rec, _ := suite.invoke(ManagerOnly, true)

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.Equal(http.StatusForbidden, suite.envelope(rec).Status)
}

func (suite *AuthorizerTestSuite) TestRequire_ManagerDeniedOwnerOnly() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(suite.membership(common.RoleManager), nil)

	rec, _ := suite.invoke(OwnerOnly, true)

	suite.Equal(http.StatusForbidden, rec.Code)
}

func (suite *AuthorizerTestSuite) TestRequire_OwnerPassesOwnerOnly() {
	suite.tenantSvc.On("ResolveActiveMembership", mock.Anything, suite.userID).
		Return(suite.membership(common.RoleOwner), nil)

	rec, _ := suite.invoke(OwnerOnly, true)

	suite.Equal(http.StatusOK, rec.Code)
}

func TestAuthorizerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthorizerTestSuite))
}
