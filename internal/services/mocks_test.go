package services

import (
	"context"
	"io"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// stubTx is a no-op pgx.Tx that records whether the transaction finished.
type stubTx struct {
	committed  bool
	rolledBack bool
}

func (t *stubTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}
func (t *stubTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}
func (t *stubTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *stubTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *stubTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *stubTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *stubTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *stubTx) Conn() *pgx.Conn                                               { return nil }

// stubDB satisfies repositories.TxStarter for services that only need Begin.
type stubDB struct {
	tx *stubTx
}

func newStubDB() *stubDB { return &stubDB{tx: &stubTx{}} }

func (d *stubDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }
func (d *stubDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (d *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (d *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) WithTx(tx pgx.Tx) repositories.AssetRepository { return m }

func (m *MockAssetRepository) Create(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.Asset, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, asset *models.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, statusName string) error {
	args := m.Called(ctx, organizationID, id, statusName)
	return args.Error(0)
}

func (m *MockAssetRepository) SetImageObject(ctx context.Context, organizationID, id uuid.UUID, objectName string) error {
	args := m.Called(ctx, organizationID, id, objectName)
	return args.Error(0)
}

func (m *MockAssetRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Asset, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.Asset), args.Error(1)
}

func (m *MockAssetRepository) ExistsByIdentificationNumber(ctx context.Context, identificationNumber string) (bool, error) {
	args := m.Called(ctx, identificationNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) CountByCategory(ctx context.Context, organizationID, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, organizationID, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetRepository) CountByType(ctx context.Context, organizationID, typeID uuid.UUID) (int, error) {
	args := m.Called(ctx, organizationID, typeID)
	return args.Int(0), args.Error(1)
}

func (m *MockAssetRepository) CountByVendor(ctx context.Context, organizationID, vendorID uuid.UUID) (int, error) {
	args := m.Called(ctx, organizationID, vendorID)
	return args.Int(0), args.Error(1)
}

type MockAssetAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssetAssignmentRepository) WithTx(tx pgx.Tx) repositories.AssetAssignmentRepository {
	return m
}

func (m *MockAssetAssignmentRepository) Create(ctx context.Context, assignment *models.AssetAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssetAssignmentRepository) GetOpenByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetAssignment, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetAssignment), args.Error(1)
}

func (m *MockAssetAssignmentRepository) ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetAssignment, error) {
	args := m.Called(ctx, assetID, limit, offset)
	return args.Get(0).([]*models.AssetAssignment), args.Error(1)
}

func (m *MockAssetAssignmentRepository) ListOpenByUser(ctx context.Context, userID uuid.UUID) ([]*models.AssetAssignment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.AssetAssignment), args.Error(1)
}

type MockAssetReturnRepository struct {
	mock.Mock
}

func (m *MockAssetReturnRepository) WithTx(tx pgx.Tx) repositories.AssetReturnRepository { return m }

func (m *MockAssetReturnRepository) Create(ctx context.Context, ret *models.AssetReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockAssetReturnRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.AssetReturn, error) {
	args := m.Called(ctx, assignmentID)
	return args.Get(0).([]*models.AssetReturn), args.Error(1)
}

type MockAssetMaintenanceRepository struct {
	mock.Mock
}

func (m *MockAssetMaintenanceRepository) WithTx(tx pgx.Tx) repositories.AssetMaintenanceRepository {
	return m
}

func (m *MockAssetMaintenanceRepository) Create(ctx context.Context, maintenance *models.AssetMaintenance) error {
	args := m.Called(ctx, maintenance)
	return args.Error(0)
}

func (m *MockAssetMaintenanceRepository) CloseOpen(ctx context.Context, assetID uuid.UUID) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

func (m *MockAssetMaintenanceRepository) ListByAsset(ctx context.Context, assetID uuid.UUID, limit, offset int) ([]*models.AssetMaintenance, error) {
	args := m.Called(ctx, assetID, limit, offset)
	return args.Get(0).([]*models.AssetMaintenance), args.Error(1)
}

type MockAssetRetireRepository struct {
	mock.Mock
}

func (m *MockAssetRetireRepository) WithTx(tx pgx.Tx) repositories.AssetRetireRepository { return m }

func (m *MockAssetRetireRepository) Create(ctx context.Context, retire *models.AssetRetire) error {
	args := m.Called(ctx, retire)
	return args.Error(0)
}

func (m *MockAssetRetireRepository) GetByAsset(ctx context.Context, assetID uuid.UUID) (*models.AssetRetire, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetRetire), args.Error(1)
}

type MockAssetRequestRepository struct {
	mock.Mock
}

func (m *MockAssetRequestRepository) WithTx(tx pgx.Tx) repositories.AssetRequestRepository {
	return m
}

func (m *MockAssetRequestRepository) Create(ctx context.Context, request *models.AssetRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAssetRequestRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetRequest), args.Error(1)
}

func (m *MockAssetRequestRepository) GetForUpdate(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetRequest), args.Error(1)
}

func (m *MockAssetRequestRepository) UpdateStatus(ctx context.Context, organizationID, id uuid.UUID, status string) error {
	args := m.Called(ctx, organizationID, id, status)
	return args.Error(0)
}

func (m *MockAssetRequestRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.AssetRequest), args.Error(1)
}

func (m *MockAssetRequestRepository) ListByRequester(ctx context.Context, organizationID, requesterID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	args := m.Called(ctx, organizationID, requesterID, limit, offset)
	return args.Get(0).([]*models.AssetRequest), args.Error(1)
}

func (m *MockAssetRequestRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*models.AssetRequest, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*models.AssetRequest), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) WithTx(tx pgx.Tx) repositories.UserRepository { return m }

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ConfirmEmail(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) WithTx(tx pgx.Tx) repositories.OrganizationRepository {
	return m
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetActiveByName(ctx context.Context, name string) (*models.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) List(ctx context.Context, limit, offset int) ([]*models.Organization, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Organization), args.Error(1)
}

type MockOrganizationDomainRepository struct {
	mock.Mock
}

func (m *MockOrganizationDomainRepository) WithTx(tx pgx.Tx) repositories.OrganizationDomainRepository {
	return m
}

func (m *MockOrganizationDomainRepository) Create(ctx context.Context, domain *models.OrganizationDomain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *MockOrganizationDomainRepository) GetByDomain(ctx context.Context, domain string) (*models.OrganizationDomain, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrganizationDomain), args.Error(1)
}

func (m *MockOrganizationDomainRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*models.OrganizationDomain, error) {
	args := m.Called(ctx, organizationID)
	return args.Get(0).([]*models.OrganizationDomain), args.Error(1)
}

func (m *MockOrganizationDomainRepository) Delete(ctx context.Context, organizationID uuid.UUID, domain string) error {
	args := m.Called(ctx, organizationID, domain)
	return args.Error(0)
}

type MockUserOrganizationRepository struct {
	mock.Mock
}

func (m *MockUserOrganizationRepository) WithTx(tx pgx.Tx) repositories.UserOrganizationRepository {
	return m
}

func (m *MockUserOrganizationRepository) Create(ctx context.Context, membership *models.UserOrganization) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockUserOrganizationRepository) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserOrganization), args.Error(1)
}

func (m *MockUserOrganizationRepository) GetMembership(ctx context.Context, organizationID, userID uuid.UUID) (*models.UserOrganization, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserOrganization), args.Error(1)
}

func (m *MockUserOrganizationRepository) UpdateRole(ctx context.Context, organizationID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, organizationID, userID, role)
	return args.Error(0)
}

func (m *MockUserOrganizationRepository) ListMembers(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.UserOrganization, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.UserOrganization), args.Error(1)
}

type MockAssetCategoryRepository struct {
	mock.Mock
}

func (m *MockAssetCategoryRepository) Create(ctx context.Context, category *models.AssetCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockAssetCategoryRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetCategory, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetCategory), args.Error(1)
}

func (m *MockAssetCategoryRepository) Update(ctx context.Context, category *models.AssetCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockAssetCategoryRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockAssetCategoryRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetCategory, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.AssetCategory), args.Error(1)
}

type MockAssetTypeRepository struct {
	mock.Mock
}

func (m *MockAssetTypeRepository) Create(ctx context.Context, assetType *models.AssetType) error {
	args := m.Called(ctx, assetType)
	return args.Error(0)
}

func (m *MockAssetTypeRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetType, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetType), args.Error(1)
}

func (m *MockAssetTypeRepository) Update(ctx context.Context, assetType *models.AssetType) error {
	args := m.Called(ctx, assetType)
	return args.Error(0)
}

func (m *MockAssetTypeRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockAssetTypeRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetType, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.AssetType), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*models.Vendor, error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	args := m.Called(ctx, organizationID, id)
	return args.Error(0)
}

func (m *MockVendorRepository) List(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.Vendor, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	return args.Get(0).([]*models.Vendor), args.Error(1)
}

type MockAssetStatusRepository struct {
	mock.Mock
}

func (m *MockAssetStatusRepository) GetByName(ctx context.Context, name string) (*models.AssetStatus, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssetStatus), args.Error(1)
}

func (m *MockAssetStatusRepository) List(ctx context.Context) ([]*models.AssetStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.AssetStatus), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMembership(ctx context.Context, userID uuid.UUID) (*models.UserOrganization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserOrganization), args.Error(1)
}

func (m *MockCacheService) SetMembership(ctx context.Context, membership *models.UserOrganization, ttl time.Duration) error {
	args := m.Called(ctx, membership, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMembership(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateOrganization(ctx context.Context, organizationID uuid.UUID) error {
	args := m.Called(ctx, organizationID)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) PruneMembershipIndexes(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	args := m.Called(ctx, recipient, subject, body)
	return args.Error(0)
}

func (m *MockNotificationService) SendConfirmationEmail(ctx context.Context, recipient, confirmURL string) error {
	args := m.Called(ctx, recipient, confirmURL)
	return args.Error(0)
}

func (m *MockNotificationService) SendPasswordResetEmail(ctx context.Context, recipient, resetURL string) error {
	args := m.Called(ctx, recipient, resetURL)
	return args.Error(0)
}

func (m *MockNotificationService) SendRequestDecision(ctx context.Context, recipient string, request *models.AssetRequest) error {
	args := m.Called(ctx, recipient, request)
	return args.Error(0)
}

func (m *MockNotificationService) SendStaleRequestReminder(ctx context.Context, recipient string, requests []*models.AssetRequest) error {
	args := m.Called(ctx, recipient, requests)
	return args.Error(0)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateTokens(ctx context.Context, userID uuid.UUID, username string, role common.Role) (*models.TokenResponse, error) {
	args := m.Called(ctx, userID, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockTokenService) RefreshTokens(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TokenClaims), args.Error(1)
}

func (m *MockTokenService) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenService) IssueConfirmationToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ResolveConfirmationToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ConsumeResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

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

func (m *MockTenantService) GetOrganizationInfo(ctx context.Context, organizationID uuid.UUID) (*OrganizationInfo, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrganizationInfo), args.Error(1)
}

func (m *MockTenantService) CreateOrganization(ctx context.Context, ownerID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationInfo, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrganizationInfo), args.Error(1)
}

func (m *MockTenantService) UpdateOrganization(ctx context.Context, ownerID uuid.UUID, patch *OrganizationPatch) (*OrganizationInfo, error) {
	args := m.Called(ctx, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OrganizationInfo), args.Error(1)
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
	return args.Get(0).([]*models.UserOrganization), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) EnsureBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockStorageService) UploadObject(ctx context.Context, bucket, objectName string, reader io.Reader, size int64) error {
	args := m.Called(ctx, bucket, objectName, reader, size)
	return args.Error(0)
}

func (m *MockStorageService) PresignedURL(ctx context.Context, bucket, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) DeleteObject(ctx context.Context, bucket, objectName string) error {
	args := m.Called(ctx, bucket, objectName)
	return args.Error(0)
}
