package service

import (
	"context"
	"time"

	"github.com/edison/video-portal/internal/core/ports"
)

// SystemStatus is the dashboard summary returned by the status endpoint.
type SystemStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Users         int64  `json:"users"`
	Videos        int64  `json:"videos"`
	AuditRecords  int64  `json:"audit_records"`
}

// SystemService aggregates counts for the admin dashboard.
type SystemService struct {
	users   ports.UserRepository
	videos  ports.VideoRepository
	audits  ports.AuditRepository
	started time.Time
}

func NewSystemService(users ports.UserRepository, videos ports.VideoRepository, audits ports.AuditRepository) *SystemService {
	return &SystemService{users: users, videos: videos, audits: audits, started: time.Now()}
}

func (s *SystemService) Status(ctx context.Context) (*SystemStatus, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	videoCount, err := s.videos.Count(ctx)
	if err != nil {
		return nil, err
	}
	auditCount, err := s.audits.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &SystemStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Users:         userCount,
		Videos:        videoCount,
		AuditRecords:  auditCount,
	}, nil
}
