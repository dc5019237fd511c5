package services

import (
	"sync"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/pkg/queue"
)

// Clinic memegang nama poliklinik dan tiga antrian prioritasnya.
// mu melindungi ketiga antrian sekaligus.
type Clinic struct {
	Name string

	mu       sync.Mutex
	critical *queue.BoundedQueue[models.Patient]
	urgent   *queue.BoundedQueue[models.Patient]
	normal   *queue.BoundedQueue[models.Patient]
}

func newClinic(name string, capacity int) *Clinic {
	return &Clinic{
		Name:     name,
		critical: queue.New[models.Patient](capacity),
		urgent:   queue.New[models.Patient](capacity),
		normal:   queue.New[models.Patient](capacity),
	}
}

// queueFor maps a priority to its queue. Anything that is not Critical or
// Urgent lands in Normal.
func (c *Clinic) queueFor(p models.Priority) *queue.BoundedQueue[models.Patient] {
	switch p {
	case models.Critical:
		return c.critical
	case models.Urgent:
		return c.urgent
	default:
		return c.normal
	}
}
