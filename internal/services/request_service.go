package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"

	"github.com/google/uuid"
)

// ProcessRequestInput is a manager's decision on a pending request.
type ProcessRequestInput struct {
	RequestID uuid.UUID `json:"request_id"`
	Action    string    `json:"action"`
}

// RequestService handles the employee-facing asset request queue. A decision
// locks the request row first, so two managers acting at once cannot both
// move the same PENDING request.
type RequestService interface {
	SubmitRequest(ctx context.Context, organizationID, requesterID uuid.UUID, description string) (*models.AssetRequest, error)
	ProcessRequest(ctx context.Context, organizationID uuid.UUID, input *ProcessRequestInput) (*models.AssetRequest, error)
	CancelRequest(ctx context.Context, organizationID, requesterID, requestID uuid.UUID) (*models.AssetRequest, error)
	GetRequest(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error)
	ListRequests(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error)
	ListMyRequests(ctx context.Context, organizationID, requesterID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error)
}

type requestService struct {
	db              repositories.TxStarter
	requestRepo     repositories.AssetRequestRepository
	userRepo        repositories.UserRepository
	notificationSvc NotificationService
}

func NewRequestService(db repositories.TxStarter, requestRepo repositories.AssetRequestRepository,
	userRepo repositories.UserRepository, notificationSvc NotificationService) RequestService {
	return &requestService{
		db:              db,
		requestRepo:     requestRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *requestService) SubmitRequest(ctx context.Context, organizationID, requesterID uuid.UUID, description string) (*models.AssetRequest, error) {
	if err := common.ValidateRequiredString(description, "request_description"); err != nil {
		return nil, err
	}
	request := &models.AssetRequest{
		ID:             uuid.New(),
		RequesterID:    requesterID,
		OrganizationID: organizationID,
		Description:    description,
		Status:         models.RequestPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *requestService) ProcessRequest(ctx context.Context, organizationID uuid.UUID, input *ProcessRequestInput) (*models.AssetRequest, error) {
	var next string
	switch input.Action {
	case models.RequestActionApprove:
		next = models.RequestApproved
	case models.RequestActionReject:
		next = models.RequestRejected
	default:
		return nil, fmt.Errorf("%w: action must be %s or %s", common.ErrValidation, models.RequestActionApprove, models.RequestActionReject)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	request, err := s.requestRepo.WithTx(tx).GetForUpdate(ctx, organizationID, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: request is %s, only PENDING requests can be processed", common.ErrInvalidTransition, request.Status)
	}
	if err := s.requestRepo.WithTx(tx).UpdateStatus(ctx, organizationID, request.ID, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	request.Status = next
	request.UpdatedAt = time.Now()

	s.notifyDecision(ctx, request)
	return request, nil
}

func (s *requestService) CancelRequest(ctx context.Context, organizationID, requesterID, requestID uuid.UUID) (*models.AssetRequest, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	request, err := s.requestRepo.WithTx(tx).GetForUpdate(ctx, organizationID, requestID)
	if err != nil {
		return nil, err
	}
	// Only the requester may cancel, and only while the request is open.
	if request.RequesterID != requesterID {
		return nil, common.ErrForbidden
	}
	if request.Status != models.RequestPending {
		return nil, fmt.Errorf("%w: request is %s, only PENDING requests can be cancelled", common.ErrInvalidTransition, request.Status)
	}
	if err := s.requestRepo.WithTx(tx).UpdateStatus(ctx, organizationID, request.ID, models.RequestCancelled); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	request.Status = models.RequestCancelled
	request.UpdatedAt = time.Now()
	return request, nil
}

func (s *requestService) GetRequest(ctx context.Context, organizationID, id uuid.UUID) (*models.AssetRequest, error) {
	return s.requestRepo.GetByID(ctx, organizationID, id)
}

func (s *requestService) ListRequests(ctx context.Context, organizationID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.requestRepo.ListByOrganization(ctx, organizationID, limit, offset)
}

func (s *requestService) ListMyRequests(ctx context.Context, organizationID, requesterID uuid.UUID, limit, offset int) ([]*models.AssetRequest, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.requestRepo.ListByRequester(ctx, organizationID, requesterID, limit, offset)
}

// notifyDecision emails the requester about the outcome. Delivery problems are
// logged, not surfaced; the decision is already committed.
func (s *requestService) notifyDecision(ctx context.Context, request *models.AssetRequest) {
	requester, err := s.userRepo.GetByID(ctx, request.RequesterID)
	if err != nil {
		log.Printf("request %s: failed to load requester for notification: %v", request.ID, err)
		return
	}
	if err := s.notificationSvc.SendRequestDecision(ctx, requester.Email, request); err != nil {
		log.Printf("request %s: failed to notify %s: %v", request.ID, requester.Email, err)
	}
}
