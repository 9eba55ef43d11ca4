package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gagyebu/internal/config"
	"gagyebu/internal/credentials"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/extract"
	"gagyebu/internal/gdrive"
	"gagyebu/internal/household"
	"gagyebu/internal/ingest"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
	"gagyebu/internal/staging"
)

// CredentialResolver authorizes a member's drive access.
type CredentialResolver interface {
	Resolve(ctx context.Context, member config.Member) (*credentials.Handle, error)
}

// DriveFactory opens the drive of an authorized member.
type DriveFactory func(ctx context.Context, client *http.Client) (gdrive.API, error)

// Invalidator is told when the stored timeline changed.
type Invalidator interface {
	Invalidate()
}

// SyncOptions configures where exports are looked for and how long a sync
// may take.
type SyncOptions struct {
	FolderName string
	FilePrefix string
	ScratchDir string
	Timeout    time.Duration
}

// SyncDeps bundles the collaborators of the sync service.
type SyncDeps struct {
	Directory   *credentials.Directory
	Resolver    CredentialResolver
	Drive       DriveFactory
	Normalizer  *ingest.Normalizer
	Spendings   SpendingServicer
	Runs        SyncRunServicer
	Invalidator Invalidator
}

// syncService pulls each member's newest export into the store.
type syncService struct {
	deps SyncDeps
	opts SyncOptions
}

// NewSyncService creates a new SyncServicer.
func NewSyncService(deps SyncDeps, opts SyncOptions) SyncServicer {
	return &syncService{deps: deps, opts: opts}
}

// memberSync carries one member's progress through the pipeline.
type memberSync struct {
	member  config.Member
	file    gdrive.File
	source  []byte
	batch   household.Batch
	stats   ingest.Stats
	started time.Time
}

// SyncHousehold syncs both members and replaces their records together. If
// either member fails nothing is written.
func (s *syncService) SyncHousehold(ctx context.Context) SyncResult {
	return s.run(ctx, s.deps.Directory.Members())
}

// SyncMember syncs the member holding role and replaces only their records.
func (s *syncService) SyncMember(ctx context.Context, role models.Role) SyncResult {
	member, err := s.deps.Directory.ByRole(role)
	if err != nil {
		return failure(err, time.Now())
	}
	return s.run(ctx, []config.Member{member})
}

func (s *syncService) run(ctx context.Context, members []config.Member) SyncResult {
	started := time.Now()
	if len(members) == 0 {
		return failure(apperrors.WithMessage(apperrors.ErrUnknownOwner, "No household accounts are configured"), started)
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	syncs := make([]*memberSync, 0, len(members))
	for _, m := range members {
		ms, err := s.syncMember(ctx, m)
		if err != nil {
			err = classify(ctx, err)
			s.recordFailure(ms, err)
			return failure(err, started)
		}
		syncs = append(syncs, ms)
	}

	batches := make([]household.Batch, len(syncs))
	for i, ms := range syncs {
		batches[i] = ms.batch
	}
	merged := household.Merge(batches...)

	if err := s.deps.Spendings.ReplaceForOwners(ctx, household.Owners(batches...), merged); err != nil {
		err = classify(ctx, err)
		for _, ms := range syncs {
			s.recordFailure(ms, err)
		}
		return failure(err, started)
	}

	if s.deps.Invalidator != nil {
		s.deps.Invalidator.Invalidate()
	}

	result := SyncResult{Success: true, Message: "Sync completed", StatusCode: http.StatusOK}
	for _, ms := range syncs {
		s.recordSuccess(ms)
		result.RecordCount += ms.stats.Records
		result.InvalidInstants += ms.stats.InvalidInstants
		result.Members = append(result.Members, MemberSyncResult{
			Email:           ms.member.Email,
			Role:            ms.member.Role,
			FileName:        ms.file.Name,
			RecordCount:     ms.stats.Records,
			InvalidInstants: ms.stats.InvalidInstants,
		})
	}
	result.DurationMs = time.Since(started).Milliseconds()

	logger.Get().Infow("sync completed",
		"members", len(syncs),
		"records", result.RecordCount,
		"invalid_instants", result.InvalidInstants,
		"duration_ms", result.DurationMs,
	)
	return result
}

// syncMember runs one member from credentials to normalized records. The
// returned memberSync is non-nil even on error so the attempt can be logged.
func (s *syncService) syncMember(ctx context.Context, member config.Member) (*memberSync, error) {
	ms := &memberSync{member: member, started: time.Now()}
	log := logger.With("owner", member.Email, "role", member.Role)

	handle, err := s.deps.Resolver.Resolve(ctx, member)
	if err != nil {
		return ms, err
	}

	api, err := s.deps.Drive(ctx, handle.Client)
	if err != nil {
		log.Errorw("opening drive failed", "error", err)
		return ms, apperrors.Wrap(apperrors.ErrDriveUnavailable, err)
	}

	ms.file, err = gdrive.NewLocator(api, s.opts.FolderName, s.opts.FilePrefix).Locate(ctx)
	if err != nil {
		return ms, err
	}

	ms.source, err = gdrive.NewFetcher(api).Fetch(ctx, ms.file)
	if err != nil {
		return ms, err
	}

	var rows []extract.Row
	err = staging.WithFile(s.opts.ScratchDir, string(member.Role), ms.source, func(path string) error {
		var readErr error
		rows, readErr = extract.ReadFile(ctx, path)
		return readErr
	})
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("staging export failed", "error", err)
			err = apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return ms, err
	}

	spendings, stats, err := s.deps.Normalizer.NormalizeAll(ingest.HouseholdRecords(member.Email, member.Role, rows))
	if err != nil {
		return ms, err
	}
	ms.stats = stats
	ms.batch = household.Batch{OwnerEmail: member.Email, Role: member.Role, Spendings: spendings}

	log.Infow("member export read", "file", ms.file.Name, "records", stats.Records, "invalid_instants", stats.InvalidInstants)
	return ms, nil
}

func (s *syncService) recordSuccess(ms *memberSync) {
	run := s.newRun(ms, models.SyncStatusSucceeded)
	run.RecordCount = ms.stats.Records
	run.InvalidInstant = ms.stats.InvalidInstants
	s.deps.Runs.Record(context.Background(), run, ms.source)
}

func (s *syncService) recordFailure(ms *memberSync, err error) {
	if ms == nil {
		return
	}
	run := s.newRun(ms, models.SyncStatusFailed)
	run.ErrorCode = apperrors.As(err).Code
	s.deps.Runs.Record(context.Background(), run, ms.source)
}

func (s *syncService) newRun(ms *memberSync, status models.SyncStatus) *models.SyncRun {
	return &models.SyncRun{
		OwnerEmail:     ms.member.Email,
		Role:           ms.member.Role,
		FileID:         ms.file.ID,
		FileName:       ms.file.Name,
		FileModifiedAt: ms.file.ModifiedTime,
		Status:         status,
		StartedAt:      ms.started.UTC(),
		FinishedAt:     time.Now().UTC(),
	}
}

// classify reports a blown sync deadline as a timeout whatever step noticed it.
func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrSyncTimeout, err)
	}
	return err
}

func failure(err error, started time.Time) SyncResult {
	appErr := apperrors.As(err)
	logger.Get().Errorw("sync failed", "code", appErr.Code, "error", err)
	return SyncResult{
		Success:    false,
		Code:       appErr.Code,
		Message:    appErr.Message,
		Retriable:  appErr.Retriable,
		StatusCode: appErr.StatusCode,
		Members:    []MemberSyncResult{},
		DurationMs: time.Since(started).Milliseconds(),
	}
}
