package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"warrantyhub/internal/domain"
	"warrantyhub/internal/pkg/jwt"
	"warrantyhub/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 1
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 5
	}
	return args.Error(0)
}

func (m *mockCompanyRepo) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *mockCompanyRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(subjectID int64, kind string) (string, error) {
	args := m.Called(subjectID, kind)
	return args.String(0), args.Error(1)
}

func newTestService(users *mockUserRepo, companies *mockCompanyRepo, tokens *mockJWTService) *Service {
	svc := NewService(users, companies, tokens, zap.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Signup_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Asha" && u.PasswordHash != "secret123"
	})).Return(nil)
	jwtSvc.On("GenerateToken", int64(1), jwt.KindUser).Return("fake-jwt-token", nil)

	svc := newTestService(userRepo, new(mockCompanyRepo), jwtSvc)
	user, token, err := svc.Signup(context.Background(), SignupRequest{
		Name: " Asha ", PhoneNumber: "9000000000", Email: "asha@example.com", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	userRepo.AssertExpectations(t)
	jwtSvc.AssertExpectations(t)
}

func TestService_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(true, nil)

	svc := newTestService(userRepo, new(mockCompanyRepo), new(mockJWTService))
	_, _, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Asha", PhoneNumber: "1", Email: "asha@example.com", Password: "x",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Signup_UniqueViolationRace(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("ExistsByEmail", mock.Anything, "asha@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := newTestService(userRepo, new(mockCompanyRepo), new(mockJWTService))
	_, _, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Asha", PhoneNumber: "1", Email: "asha@example.com", Password: "x",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login(t *testing.T) {
	user := &domain.User{ID: 9, Email: "asha@example.com", PasswordHash: hashed(t, "right")}

	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", mock.Anything, "asha@example.com").Return(user, nil)
	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)
	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", int64(9), jwt.KindUser).Return("tok", nil)

	svc := newTestService(userRepo, new(mockCompanyRepo), jwtSvc)

	got, token, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "right"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "tok", token)

	for i := 0; i < 3; i++ {
		_, _, err = svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "right"})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestService_RegisterCompany_IsActive(t *testing.T) {
	companyRepo := new(mockCompanyRepo)
	companyRepo.On("ExistsByEmail", mock.Anything, "care@acme.io").Return(false, nil)
	companyRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Company) bool {
		return c.IsActive && !c.IsVerified
	})).Return(nil)
	jwtSvc := new(mockJWTService)
	jwtSvc.On("GenerateToken", int64(5), jwt.KindCompany).Return("company-token", nil)

	svc := newTestService(new(mockUserRepo), companyRepo, jwtSvc)
	company, token, err := svc.RegisterCompany(context.Background(), CompanyRegisterRequest{
		Name: "Acme", Email: "care@acme.io", Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), company.ID)
	assert.Equal(t, "company-token", token)
	companyRepo.AssertExpectations(t)
}

func TestService_LoginCompany_DeactivatedBeforePassword(t *testing.T) {
	company := &domain.Company{ID: 5, Email: "care@acme.io", PasswordHash: hashed(t, "right"), IsActive: false}

	companyRepo := new(mockCompanyRepo)
	companyRepo.On("GetByEmail", mock.Anything, "care@acme.io").Return(company, nil)

	svc := newTestService(new(mockUserRepo), companyRepo, new(mockJWTService))

	_, _, err := svc.LoginCompany(context.Background(), LoginRequest{Email: "care@acme.io", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)

	company.IsActive = true
	_, _, err = svc.LoginCompany(context.Background(), LoginRequest{Email: "care@acme.io", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
