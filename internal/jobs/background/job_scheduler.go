package background

import (
	"context"
	"log"
	"sync"
	"time"

	"assetra/internal/caching"
	"assetra/internal/common"
	"assetra/internal/models"
	"assetra/internal/repositories"
	"assetra/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// StaleRequestAge is how long a request may sit PENDING before managers get
// a reminder.
const StaleRequestAge = 7 * 24 * time.Hour

// JobScheduler runs the periodic maintenance work: reminding managers about
// stale pending requests and sweeping cache leftovers.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	cacheSvc        caching.CacheService
	requestRepo     repositories.AssetRequestRepository
	userOrgRepo     repositories.UserOrganizationRepository
	userRepo        repositories.UserRepository
	notificationSvc services.NotificationService

	mu   sync.RWMutex
	jobs map[string]gocron.Job
}

func NewJobScheduler(cacheSvc caching.CacheService, requestRepo repositories.AssetRequestRepository,
	userOrgRepo repositories.UserOrganizationRepository, userRepo repositories.UserRepository,
	notificationSvc services.NotificationService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		cacheSvc:        cacheSvc,
		requestRepo:     requestRepo,
		userOrgRepo:     userOrgRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		jobs:            make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	reminderJob, err := js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.RemindStaleRequests, context.Background()),
		gocron.WithName("stale-request-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create stale request reminder job: %v", err)
	} else {
		js.jobs["stale-request-reminders"] = reminderJob
	}

	cacheJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.cleanupExpiredCache, context.Background()),
		gocron.WithName("cache-cleanup"),
	)
	if err != nil {
		log.Printf("Failed to create cache cleanup job: %v", err)
	} else {
		js.jobs["cache-cleanup"] = cacheJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// RemindStaleRequests emails each organization's owner and managers a digest
// of requests that have been pending longer than StaleRequestAge.
func (js *JobScheduler) RemindStaleRequests(ctx context.Context) error {
	log.Printf("Checking for stale pending requests")

	stale, err := js.requestRepo.ListPendingOlderThan(ctx, time.Now().Add(-StaleRequestAge))
	if err != nil {
		log.Printf("Failed to list stale requests: %v", err)
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	byOrg := make(map[uuid.UUID][]*models.AssetRequest)
	for _, req := range stale {
		byOrg[req.OrganizationID] = append(byOrg[req.OrganizationID], req)
	}

	for organizationID, requests := range byOrg {
		members, err := js.userOrgRepo.ListMembers(ctx, organizationID, 1000, 0)
		if err != nil {
			log.Printf("Failed to list members for organization %s: %v", organizationID, err)
			continue
		}
		for _, member := range members {
			role := common.Role(member.Role)
			if role != common.RoleOwner && role != common.RoleManager {
				continue
			}
			user, err := js.userRepo.GetByID(ctx, member.UserID)
			if err != nil {
				log.Printf("Failed to load user %s for reminder: %v", member.UserID, err)
				continue
			}
			if err := js.notificationSvc.SendStaleRequestReminder(ctx, user.Email, requests); err != nil {
				log.Printf("Failed to send stale request reminder to %s: %v", user.Email, err)
			}
		}
	}

	log.Printf("Sent stale request reminders for %d organization(s)", len(byOrg))
	return nil
}

// cleanupExpiredCache prunes the membership index sets. Redis expires the
// token and membership keys on its own; the index sets have no TTL, so only
// members whose membership keys already expired are dropped. Live entries
// keep their index so organization-wide invalidation still reaches them.
func (js *JobScheduler) cleanupExpiredCache(ctx context.Context) error {
	pruned, err := js.cacheSvc.PruneMembershipIndexes(ctx)
	if err != nil {
		log.Printf("Cache cleanup failed: %v", err)
		return err
	}
	log.Printf("Cache cleanup completed, pruned %d stale index member(s)", pruned)
	return nil
}

// AddJob registers an extra interval job at runtime.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	js.jobs[name] = job
	return nil
}

func (js *JobScheduler) RemoveJob(name string) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if job, exists := js.jobs[name]; exists {
		err := js.scheduler.RemoveJob(job.ID())
		delete(js.jobs, name)
		return err
	}
	return nil
}

// JobNames lists the registered job names.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}
