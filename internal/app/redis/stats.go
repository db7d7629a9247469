package redis

import (
	"buildcost/internal/app/ds"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Кэш статистики закупок. Ключи включают поколение тенанта: запись в журнал
// увеличивает поколение, и все старые ключи перестают читаться (истекают по TTL).
// Поколение читается до запроса к БД и передаётся в SetStatistics: если между
// ними прошла запись, результат ляжет под устаревший ключ и не будет прочитан.

const statsPrefix = "stats."

func getStatsGenerationKey(tenantID uint) string {
	return fmt.Sprintf("%s%sgen.%d", servicePrefix, statsPrefix, tenantID)
}

func getStatsKey(tenantID uint, generation int64, filterKey string) string {
	return fmt.Sprintf("%s%s%d.%d.%s", servicePrefix, statsPrefix, tenantID, generation, filterKey)
}

func (c *Client) statsGeneration(ctx context.Context, tenantID uint) (int64, error) {
	gen, err := c.client.Get(ctx, getStatsGenerationKey(tenantID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetStatistics возвращает запись кэша и текущее поколение тенанта.
// Поколение -1 значит, что redis недоступен и заполнять кэш не нужно.
func (c *Client) GetStatistics(ctx context.Context, tenantID uint, filterKey string) (*ds.PurchaseStats, int64, bool) {
	gen, err := c.statsGeneration(ctx, tenantID)
	if err != nil {
		logrus.Warnf("statistics cache: %v", err)
		return nil, -1, false
	}

	raw, err := c.client.Get(ctx, getStatsKey(tenantID, gen, filterKey)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logrus.Warnf("statistics cache: %v", err)
		}
		return nil, gen, false
	}

	var stats ds.PurchaseStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		logrus.Warnf("statistics cache: bad entry: %v", err)
		return nil, gen, false
	}
	return &stats, gen, true
}

// SetStatistics кладёт результат под поколение, прочитанное до запроса к БД
func (c *Client) SetStatistics(ctx context.Context, tenantID uint, generation int64, filterKey string, stats ds.PurchaseStats) {
	if c.statisticsTTL <= 0 || generation < 0 {
		return
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		logrus.Warnf("statistics cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, getStatsKey(tenantID, generation, filterKey), raw, c.statisticsTTL).Err(); err != nil {
		logrus.Warnf("statistics cache: %v", err)
	}
}

func (c *Client) InvalidateStatistics(ctx context.Context, tenantID uint) {
	if err := c.client.Incr(ctx, getStatsGenerationKey(tenantID)).Err(); err != nil {
		logrus.Warnf("statistics cache: invalidate tenant %d: %v", tenantID, err)
	}
}
