package service

import (
	"sync"

	"github.com/InQaaaaGit/fanout.git/internal/models"
)

// reportCache хранит последний отчет каждого пользователя в памяти.
// Кэш живет только в рамках процесса и теряется при перезапуске.
type reportCache struct {
	mu      sync.RWMutex
	reports map[string]*models.ProbeReport
}

// newReportCache создает новый экземпляр reportCache
func newReportCache() *reportCache {
	return &reportCache{
		reports: make(map[string]*models.ProbeReport),
	}
}

// save сохраняет отчет пользователя, заменяя предыдущий
func (c *reportCache) save(userID string, report *models.ProbeReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reports[userID] = report
}

// get возвращает последний отчет пользователя
func (c *reportCache) get(userID string) (*models.ProbeReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report, exists := c.reports[userID]
	if !exists {
		return nil, ErrNoReport
	}
	return report, nil
}
