package service

import (
	"context"
	"fmt"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/pagination"
	"bjustcoin/internal/repository"
)

// LogPage is one page of audit entries with actor and target resolved.
type LogPage struct {
	Data []model.LogData `json:"data"`
	Next int             `json:"next"`
}

// AuditService is the append-only trail of privilege and workflow actions.
type AuditService interface {
	Append(ctx context.Context, actorID uint, text string, targetID *uint) error
	List(ctx context.Context, page int, limit *int) (*LogPage, error)
	ListForUser(ctx context.Context, userID uint, page int, limit *int) (*LogPage, error)
}

type auditService struct {
	logRepo repository.LogRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(logRepo repository.LogRepository) AuditService {
	return &auditService{logRepo: logRepo}
}

func (s *auditService) Append(ctx context.Context, actorID uint, text string, targetID *uint) error {
	entry := &model.LogEntry{
		UserID:   actorID,
		Text:     text,
		TargetID: targetID,
	}
	if err := s.logRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("%w: append audit log: %v", apperrors.ErrInternal, err)
	}
	return nil
}

func (s *auditService) List(ctx context.Context, page int, limit *int) (*LogPage, error) {
	lim := pagination.Limit(limit)
	entries, err := s.logRepo.List(ctx, lim, pagination.Offset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: list audit log: %v", apperrors.ErrInternal, err)
	}
	hasMore, err := s.logRepo.ExistsAtOffset(ctx, nil, pagination.ProbeOffset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: probe audit log: %v", apperrors.ErrInternal, err)
	}
	data, err := s.resolve(ctx, entries)
	if err != nil {
		return nil, err
	}
	return &LogPage{Data: data, Next: pagination.Next(page, hasMore)}, nil
}

func (s *auditService) ListForUser(ctx context.Context, userID uint, page int, limit *int) (*LogPage, error) {
	lim := pagination.Limit(limit)
	entries, err := s.logRepo.ListForUser(ctx, userID, lim, pagination.Offset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: list audit log: %v", apperrors.ErrInternal, err)
	}
	hasMore, err := s.logRepo.ExistsAtOffset(ctx, &userID, pagination.ProbeOffset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: probe audit log: %v", apperrors.ErrInternal, err)
	}
	data, err := s.resolve(ctx, entries)
	if err != nil {
		return nil, err
	}
	return &LogPage{Data: data, Next: pagination.Next(page, hasMore)}, nil
}

// resolve joins entries with their SmallUser projections at read time.
func (s *auditService) resolve(ctx context.Context, entries []model.LogEntry) ([]model.LogData, error) {
	ids := make([]uint, 0, len(entries)*2)
	seen := make(map[uint]bool, len(entries)*2)
	for _, e := range entries {
		if !seen[e.UserID] {
			seen[e.UserID] = true
			ids = append(ids, e.UserID)
		}
		if e.TargetID != nil && !seen[*e.TargetID] {
			seen[*e.TargetID] = true
			ids = append(ids, *e.TargetID)
		}
	}

	users, err := s.logRepo.FindSmallUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve audit users: %v", apperrors.ErrInternal, err)
	}

	data := make([]model.LogData, 0, len(entries))
	for _, e := range entries {
		d := model.LogData{
			User:    users[e.UserID],
			Text:    e.Text,
			Created: e.CreatedAt,
		}
		if e.TargetID != nil {
			if target, ok := users[*e.TargetID]; ok {
				d.Target = &target
			}
		}
		data = append(data, d)
	}
	return data, nil
}
