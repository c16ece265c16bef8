package bill

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"go.uber.org/zap"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/storage"
)

type Service struct {
	repo  Repository
	files storage.FileStore
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, files storage.FileStore, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		files: files,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the invoice file and appends the bill to the user.
// The stored file is removed again if the bill cannot be saved.
func (s *Service) Upload(ctx context.Context, userID int64, b *domain.Bill, fh *multipart.FileHeader) (*BillResponse, error) {
	stored, err := s.files.Save(ctx, fh)
	if err != nil {
		return nil, err
	}

	b.UserID = userID
	b.InvoiceFileURL = stored.URL
	if err := s.repo.AddBill(ctx, b); err != nil {
		if derr := s.files.Delete(context.WithoutCancel(ctx), stored.URL); derr != nil {
			s.log.Warn("failed to remove orphaned invoice", zap.String("url", stored.URL), zap.Error(derr))
		}
		return nil, fmt.Errorf("add bill: %w", err)
	}

	resp := NewBillResponse(*b, s.now())
	return &resp, nil
}

func (s *Service) List(ctx context.Context, userID int64) ([]BillResponse, error) {
	bills, err := s.repo.ListBills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return NewBillResponses(bills, s.now()), nil
}
