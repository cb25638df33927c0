package prober

import "sync"

// hostLimiter сериализует одновременные опросы одного хоста.
// В отличие от глобального лимита воркеров, блокировка берется по имени хоста:
// пока один воркер опрашивает хост, остальные цели того же хоста ждут.
type hostLimiter struct {
	mu    sync.Mutex
	hosts map[string]*sync.Mutex
}

// newHostLimiter создает новый hostLimiter.
func newHostLimiter() *hostLimiter {
	return &hostLimiter{
		hosts: make(map[string]*sync.Mutex),
	}
}

// lock захватывает блокировку для указанного хоста, при необходимости создавая ее.
// Вызов блокируется, пока хост занят другим воркером.
func (hl *hostLimiter) lock(host string) {
	hl.mu.Lock()
	m, ok := hl.hosts[host]
	if !ok {
		m = &sync.Mutex{}
		hl.hosts[host] = m
	}
	hl.mu.Unlock()

	m.Lock()
}

// unlock освобождает блокировку для указанного хоста.
func (hl *hostLimiter) unlock(host string) {
	hl.mu.Lock()
	m, ok := hl.hosts[host]
	hl.mu.Unlock()

	if ok {
		m.Unlock()
	}
}
