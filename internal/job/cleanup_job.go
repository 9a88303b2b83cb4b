package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workpanel-api/internal/client"
	"workpanel-api/internal/domain"
	"workpanel-api/internal/repository"
)

const (
	// tempRetention is how long an unconfirmed upload may sit before the
	// sweep reclaims it
	tempRetention = 24 * time.Hour

	// orphanBatchSize caps how many parked objects one run retries
	orphanBatchSize = 100
)

// CleanupJob reclaims storage left behind by abandoned uploads and failed
// deletes. It runs on a cron schedule.
type CleanupJob struct {
	attachmentRepo repository.AttachmentRepository
	s3Client       client.S3ClientInterface
	logger         *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	attachmentRepo repository.AttachmentRepository,
	s3Client client.S3ClientInterface,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		attachmentRepo: attachmentRepo,
		s3Client:       s3Client,
		logger:         logger,
	}
}

// Run executes one sweep. It retries parked orphaned objects first, then
// reclaims TEMP attachments that were never confirmed.
func (j *CleanupJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting storage cleanup sweep")
	orphansDeleted := j.sweepOrphans(ctx)
	tempsDeleted, tempsParked := j.sweepStaleTemp(ctx)
	j.logger.Info("Storage cleanup sweep completed",
		zap.Int("orphans_deleted", orphansDeleted),
		zap.Int("temps_deleted", tempsDeleted),
		zap.Int("temps_parked", tempsParked),
	)
}

// sweepOrphans retries the object deletes that failed during attachment
// removal. Keys that fail again stay parked for the next run.
func (j *CleanupJob) sweepOrphans(ctx context.Context) int {
	orphans, err := j.attachmentRepo.FindOrphans(ctx, orphanBatchSize)
	if err != nil {
		j.logger.Error("Failed to load orphaned objects", zap.Error(err))
		return 0
	}

	deleted := 0
	for _, orphan := range orphans {
		if err := j.s3Client.DeleteFile(ctx, orphan.FileKey); err != nil {
			j.logger.Warn("Orphaned object delete failed, leaving it parked",
				zap.String("file_key", orphan.FileKey),
				zap.Error(err),
			)
			continue
		}
		if err := j.attachmentRepo.DeleteOrphan(ctx, orphan.ID); err != nil {
			j.logger.Error("Failed to remove orphan record",
				zap.String("orphan_id", orphan.ID.String()),
				zap.Error(err),
			)
			continue
		}
		deleted++
	}
	return deleted
}

// sweepStaleTemp reclaims uploads that were presigned but never confirmed.
// The metadata row goes first so the attachment can never reappear; a failed
// object delete parks the key as an orphan.
func (j *CleanupJob) sweepStaleTemp(ctx context.Context) (deleted, parked int) {
	cutoff := time.Now().Add(-tempRetention)
	stale, err := j.attachmentRepo.FindStaleTemp(ctx, cutoff)
	if err != nil {
		j.logger.Error("Failed to load stale temporary attachments", zap.Error(err))
		return 0, 0
	}

	if len(stale) == 0 {
		return 0, 0
	}

	j.logger.Info("Found stale temporary attachments", zap.Int("count", len(stale)))

	for _, attachment := range stale {
		if err := j.attachmentRepo.Delete(ctx, attachment.ID); err != nil {
			j.logger.Error("Failed to delete stale attachment record",
				zap.String("attachment_id", attachment.ID.String()),
				zap.Error(err),
			)
			continue
		}

		if err := j.s3Client.DeleteFile(ctx, attachment.FileKey); err != nil {
			j.logger.Warn("Stale upload object delete failed, parking key",
				zap.String("file_key", attachment.FileKey),
				zap.Error(err),
			)
			orphan := &domain.OrphanedObject{
				ID:      uuid.New(),
				FileKey: attachment.FileKey,
			}
			if err := j.attachmentRepo.RecordOrphan(ctx, orphan); err != nil {
				j.logger.Error("Failed to park orphaned object",
					zap.String("file_key", attachment.FileKey),
					zap.Error(err),
				)
			}
			parked++
			continue
		}
		deleted++
	}
	return deleted, parked
}
