package service

import (
	"time"

	"github.com/rsmanito/restaurant-api/config"
)

type Service struct {
	cfg *config.Config
	now func() time.Time
}

// New returns a new Service.
func New(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}
