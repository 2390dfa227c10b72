package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	calendarrepo "goclan/api/repositories/calendar"
	"goclan/pkg/database/models"
	"goclan/pkg/redis"
)

const scheduleKey = "calendar:battle:%d"

// ScheduleCache fronts the shared battle calendar. The calendar is
// read-mostly reference data, so it lives in memory with a redis copy
// and falls back to the database when both miss.
type ScheduleCache struct {
	redis       *redis.RedisClient
	memoryCache map[int]*models.BattleSchedule
	TTL         time.Duration
	mu          sync.RWMutex
}

// Singleton.
var (
	scheduleInstance *ScheduleCache
	scheduleOnce     sync.Once
)

// GetScheduleCache returns the instance of the schedule cache.
func GetScheduleCache() *ScheduleCache {
	scheduleOnce.Do(func() {
		scheduleInstance = &ScheduleCache{
			redis:       redis.GetClient(),
			memoryCache: make(map[int]*models.BattleSchedule),
			TTL:         6 * time.Hour,
		}

		// Start the worker that will reset the cache.
		go scheduleInstance.cacheExpirationWorker()
	})

	return scheduleInstance
}

// Invalidate the in-memory copy on each TTL tick so calendar updates
// eventually surface without a restart.
func (c *ScheduleCache) cacheExpirationWorker() {
	ticker := time.NewTicker(c.TTL)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		c.memoryCache = make(map[int]*models.BattleSchedule)
		c.mu.Unlock()
	}
}

// Initialize preloads the full calendar into memory and redis.
func (c *ScheduleCache) Initialize(ctx context.Context, repo calendarrepo.CalendarRepository) error {
	schedules, err := repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("couldn't preload the battle schedule: %w", err)
	}

	c.mu.Lock()
	for _, schedule := range schedules {
		c.memoryCache[schedule.BattleId] = schedule
	}
	c.mu.Unlock()

	for _, schedule := range schedules {
		c.saveToRedis(ctx, schedule)
	}

	return nil
}

// GetSchedule resolves a battle id against the calendar: memory first,
// then redis, then the database. Returns nil when the id isn't scheduled.
func (c *ScheduleCache) GetSchedule(ctx context.Context, battleId int, repo calendarrepo.CalendarRepository) (*models.BattleSchedule, error) {
	c.mu.RLock()
	if schedule, exists := c.memoryCache[battleId]; exists {
		c.mu.RUnlock()
		return schedule, nil
	}
	c.mu.RUnlock()

	// Try the redis copy before hitting the database.
	cacheKey := fmt.Sprintf(scheduleKey, battleId)
	raw, err := c.redis.Get(ctx, cacheKey)
	if err == nil {
		var schedule models.BattleSchedule
		if err := json.Unmarshal([]byte(raw), &schedule); err == nil {
			c.saveToMemory(&schedule)
			return &schedule, nil
		}
	}

	if repo == nil {
		return nil, nil
	}

	schedule, err := repo.GetByBattleId(ctx, battleId)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, nil
	}

	c.saveToMemory(schedule)
	c.saveToRedis(ctx, schedule)

	return schedule, nil
}

func (c *ScheduleCache) saveToMemory(schedule *models.BattleSchedule) {
	c.mu.Lock()
	c.memoryCache[schedule.BattleId] = schedule
	c.mu.Unlock()
}

func (c *ScheduleCache) saveToRedis(ctx context.Context, schedule *models.BattleSchedule) {
	j, err := json.Marshal(schedule)
	if err != nil {
		return
	}

	key := fmt.Sprintf(scheduleKey, schedule.BattleId)
	c.redis.Set(ctx, key, string(j), 24*time.Hour)
}
