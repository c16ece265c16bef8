package user

import (
	"context"
	"fmt"
	"time"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/modules/bill"
)

type Repository interface {
	ListWithBills(ctx context.Context) ([]domain.User, error)
}

// Entry is one row of the company dashboard's user directory.
type Entry struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	PhoneNumber string              `json:"phoneNumber"`
	Bills       []bill.BillResponse `json:"bills"`
	CreatedAt   time.Time           `json:"createdAt"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// List returns every user, newest first, with their bills and derived warranty state.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	users, err := s.repo.ListWithBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	now := s.now()
	out := make([]Entry, 0, len(users))
	for _, u := range users {
		out = append(out, Entry{
			ID:          u.ID,
			Name:        u.Name,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Bills:       bill.NewBillResponses(u.Bills, now),
			CreatedAt:   u.CreatedAt,
		})
	}
	return out, nil
}
