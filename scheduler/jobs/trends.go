package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"goclan/api/cache"
	"goclan/pkg/logger"
	"goclan/pkg/redis"
)

// PurgeStaleTrendCaches sweeps superseded trend cache entries out of
// redis. Invalidation only moves a clan's version pointer, so every bump
// strands the variants cached under the previous version until their TTL;
// this job deletes them early.
func PurgeStaleTrendCaches() error {
	log.Println("Starting stale trend cache purge.")

	jobLogger, err := logger.CreateLogger()
	if err != nil {
		return fmt.Errorf("couldn't create the job logger: %w", err)
	}

	ctx := context.Background()
	purged, err := cache.PurgeStaleTrends(ctx, redis.GetClient())
	if err != nil {
		jobLogger.Errorf("Trend cache purge failed after %d deletions: %v", purged, err)
		return fmt.Errorf("couldn't purge the stale trend caches: %w", err)
	}

	jobLogger.Infof("Purged %d stale trend cache entries.", purged)

	objectKey := fmt.Sprintf("scheduler/trends/%s.log", time.Now().UTC().Format("2006-01-02"))
	if err := jobLogger.UploadToS3Bucket(objectKey); err != nil {
		log.Printf("Couldn't upload the job log: %v", err)
	}

	log.Printf("Finished stale trend cache purge, %d entries removed.", purged)
	return nil
}
