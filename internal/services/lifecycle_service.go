package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
)

// AssignAssetRequest hands an asset to a user.
type AssignAssetRequest struct {
	AssetID      uuid.UUID `json:"asset_id"`
	AssignedToID uuid.UUID `json:"assigned_to_id"`
	Notes        string    `json:"notes"`
}

// ReturnAssetRequest closes an open assignment. The return condition decides
// whether the asset goes back to available or into maintenance.
type ReturnAssetRequest struct {
	AssetID         uuid.UUID `json:"asset_id"`
	ReturnCondition string    `json:"return_condition"`
	Notes           string    `json:"notes"`
}

type RetireAssetRequest struct {
	AssetID          uuid.UUID `json:"asset_id"`
	RetirementReason string    `json:"retirement_reason"`
}

type MaintenanceRequest struct {
	AssetID     uuid.UUID `json:"asset_id"`
	Description string    `json:"description"`
}

// LifecycleService drives the asset state machine. Every transition runs in a
// transaction with the asset row locked, so a concurrent transition sees the
// committed state and fails cleanly instead of double-assigning.
type LifecycleService interface {
	AssignAsset(ctx context.Context, organizationID, assignedByID uuid.UUID, req *AssignAssetRequest) (*models.AssetAssignment, error)
	ReturnAsset(ctx context.Context, organizationID uuid.UUID, req *ReturnAssetRequest) (*models.AssetReturn, error)
	RetireAsset(ctx context.Context, organizationID uuid.UUID, req *RetireAssetRequest) (*models.AssetRetire, error)
	StartMaintenance(ctx context.Context, organizationID uuid.UUID, req *MaintenanceRequest) (*models.AssetMaintenance, error)
	CompleteMaintenance(ctx context.Context, organizationID, assetID uuid.UUID) error

	AssignmentHistory(ctx context.Context, organizationID, assetID uuid.UUID, limit, offset int) ([]*models.AssetAssignment, error)
	MaintenanceHistory(ctx context.Context, organizationID, assetID uuid.UUID, limit, offset int) ([]*models.AssetMaintenance, error)
	OpenAssignmentsForUser(ctx context.Context, userID uuid.UUID) ([]*models.AssetAssignment, error)
}

type lifecycleService struct {
	db              repositories.TxStarter
	assetRepo       repositories.AssetRepository
	assignmentRepo  repositories.AssetAssignmentRepository
	returnRepo      repositories.AssetReturnRepository
	maintenanceRepo repositories.AssetMaintenanceRepository
	retireRepo      repositories.AssetRetireRepository
	userOrgRepo     repositories.UserOrganizationRepository
}

func NewLifecycleService(db repositories.TxStarter, assetRepo repositories.AssetRepository,
	assignmentRepo repositories.AssetAssignmentRepository, returnRepo repositories.AssetReturnRepository,
	maintenanceRepo repositories.AssetMaintenanceRepository, retireRepo repositories.AssetRetireRepository,
	userOrgRepo repositories.UserOrganizationRepository) LifecycleService {
	return &lifecycleService{
		db:              db,
		assetRepo:       assetRepo,
		assignmentRepo:  assignmentRepo,
		returnRepo:      returnRepo,
		maintenanceRepo: maintenanceRepo,
		retireRepo:      retireRepo,
		userOrgRepo:     userOrgRepo,
	}
}

func invalidTransition(from, action string) error {
	return fmt.Errorf("%w: cannot %s an asset that is %s", common.ErrInvalidTransition, action, from)
}

func (s *lifecycleService) AssignAsset(ctx context.Context, organizationID, assignedByID uuid.UUID, req *AssignAssetRequest) (*models.AssetAssignment, error) {
	if req.AssignedToID == uuid.Nil {
		return nil, fmt.Errorf("%w: assigned_to_id is required", common.ErrValidation)
	}
	if _, err := s.userOrgRepo.GetMembership(ctx, organizationID, req.AssignedToID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: assigned_to_id is not a member of this organization", common.ErrValidation)
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := s.assetRepo.WithTx(tx).GetForUpdate(ctx, organizationID, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != models.StatusAvailable {
		return nil, invalidTransition(asset.Status, "assign")
	}

	assignment := &models.AssetAssignment{
		ID:           uuid.New(),
		AssetID:      asset.ID,
		AssignedToID: req.AssignedToID,
		AssignedByID: assignedByID,
		AssignedDate: time.Now(),
		Notes:        req.Notes,
	}
	if err := s.assignmentRepo.WithTx(tx).Create(ctx, assignment); err != nil {
		return nil, err
	}
	if err := s.assetRepo.WithTx(tx).UpdateStatus(ctx, organizationID, asset.ID, models.StatusAssigned); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *lifecycleService) ReturnAsset(ctx context.Context, organizationID uuid.UUID, req *ReturnAssetRequest) (*models.AssetReturn, error) {
	if !models.ValidReturnCondition(req.ReturnCondition) {
		return nil, fmt.Errorf("%w: return_condition must be one of %s, %s, %s",
			common.ErrValidation, models.ReturnConditionGood, models.ReturnConditionDamaged, models.ReturnConditionNeedsRepair)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := s.assetRepo.WithTx(tx).GetForUpdate(ctx, organizationID, req.AssetID)
	if err != nil {
		return nil, err
	}
	if asset.Status != models.StatusAssigned {
		return nil, invalidTransition(asset.Status, "return")
	}

	assignment, err := s.assignmentRepo.WithTx(tx).GetOpenByAsset(ctx, asset.ID)
	if err != nil {
		return nil, err
	}

	ret := &models.AssetReturn{
		ID:                uuid.New(),
		AssetAssignmentID: assignment.ID,
		ReturnedDate:      time.Now(),
		ReturnCondition:   req.ReturnCondition,
		Notes:             req.Notes,
	}
	if err := s.returnRepo.WithTx(tx).Create(ctx, ret); err != nil {
		return nil, err
	}

	nextStatus := models.StatusAvailable
	if req.ReturnCondition != models.ReturnConditionGood {
		nextStatus = models.StatusUnderMaintenance
		maintenance := &models.AssetMaintenance{
			ID:              uuid.New(),
			AssetID:         asset.ID,
			MaintenanceDate: time.Now(),
			Description:     fmt.Sprintf("returned %s: %s", req.ReturnCondition, req.Notes),
		}
		if err := s.maintenanceRepo.WithTx(tx).Create(ctx, maintenance); err != nil {
			return nil, err
		}
	}
	if err := s.assetRepo.WithTx(tx).UpdateStatus(ctx, organizationID, asset.ID, nextStatus); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

// RetireAsset permanently takes an asset out of circulation. Assigned assets
// must be returned first; retirement is terminal.
func (s *lifecycleService) RetireAsset(ctx context.Context, organizationID uuid.UUID, req *RetireAssetRequest) (*models.AssetRetire, error) {
	if err := common.ValidateRequiredString(req.RetirementReason, "retirement_reason"); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := s.assetRepo.WithTx(tx).GetForUpdate(ctx, organizationID, req.AssetID)
	if err != nil {
		return nil, err
	}
	switch asset.Status {
	case models.StatusAvailable, models.StatusUnderMaintenance:
	default:
		return nil, invalidTransition(asset.Status, "retire")
	}

	retire := &models.AssetRetire{
		ID:               uuid.New(),
		AssetID:          asset.ID,
		RetiredOn:        time.Now(),
		RetirementReason: req.RetirementReason,
	}
	if err := s.retireRepo.WithTx(tx).Create(ctx, retire); err != nil {
		return nil, err
	}
	if asset.Status == models.StatusUnderMaintenance {
		if err := s.maintenanceRepo.WithTx(tx).CloseOpen(ctx, asset.ID); err != nil {
			return nil, err
		}
	}
	if err := s.assetRepo.WithTx(tx).UpdateStatus(ctx, organizationID, asset.ID, models.StatusRetired); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return retire, nil
}

func (s *lifecycleService) StartMaintenance(ctx context.Context, organizationID uuid.UUID, req *MaintenanceRequest) (*models.AssetMaintenance, error) {
	if err := common.ValidateRequiredString(req.Description, "description"); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := s.assetRepo.WithTx(tx).GetForUpdate(ctx, organizationID, req.AssetID)
	if err != nil {
		return nil, err
	}
	switch asset.Status {
	case models.StatusAvailable, models.StatusUnderMaintenance:
	default:
		return nil, invalidTransition(asset.Status, "service")
	}

	maintenance := &models.AssetMaintenance{
		ID:              uuid.New(),
		AssetID:         asset.ID,
		MaintenanceDate: time.Now(),
		Description:     req.Description,
	}
	if err := s.maintenanceRepo.WithTx(tx).Create(ctx, maintenance); err != nil {
		return nil, err
	}
	// An asset already in maintenance just gets another log entry.
	if asset.Status == models.StatusAvailable {
		if err := s.assetRepo.WithTx(tx).UpdateStatus(ctx, organizationID, asset.ID, models.StatusUnderMaintenance); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return maintenance, nil
}

func (s *lifecycleService) CompleteMaintenance(ctx context.Context, organizationID, assetID uuid.UUID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	asset, err := s.assetRepo.WithTx(tx).GetForUpdate(ctx, organizationID, assetID)
	if err != nil {
		return err
	}
	if asset.Status != models.StatusUnderMaintenance {
		return invalidTransition(asset.Status, "complete maintenance for")
	}

	if err := s.maintenanceRepo.WithTx(tx).CloseOpen(ctx, asset.ID); err != nil {
		return err
	}
	if err := s.assetRepo.WithTx(tx).UpdateStatus(ctx, organizationID, asset.ID, models.StatusAvailable); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *lifecycleService) AssignmentHistory(ctx context.Context, organizationID, assetID uuid.UUID, limit, offset int) ([]*models.AssetAssignment, error) {
	if _, err := s.assetRepo.GetByID(ctx, organizationID, assetID); err != nil {
		return nil, err
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.assignmentRepo.ListByAsset(ctx, assetID, limit, offset)
}

func (s *lifecycleService) MaintenanceHistory(ctx context.Context, organizationID, assetID uuid.UUID, limit, offset int) ([]*models.AssetMaintenance, error) {
	if _, err := s.assetRepo.GetByID(ctx, organizationID, assetID); err != nil {
		return nil, err
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.maintenanceRepo.ListByAsset(ctx, assetID, limit, offset)
}

func (s *lifecycleService) OpenAssignmentsForUser(ctx context.Context, userID uuid.UUID) ([]*models.AssetAssignment, error) {
	return s.assignmentRepo.ListOpenByUser(ctx, userID)
}
