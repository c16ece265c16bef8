package main

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warrantyhub/internal/config"
	"warrantyhub/internal/database"
	"warrantyhub/internal/domain"
	"warrantyhub/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	// children first
	lg.Info("cleaning old data")
	for _, table := range []string{"claims", "purchases", "bills", "plans", "companies", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			lg.Fatal("cleanup failed", zap.String("table", table), zap.Error(err))
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error { return seed(tx, lg) }); err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
	lg.Info("seed complete")
}

func hash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}
	return string(h)
}

func seed(tx *gorm.DB, lg *zap.Logger) error {
	now := time.Now().UTC()
	create := func(v any) error { return tx.Omit(clause.Associations).Create(v).Error }

	// ================== COMPANIES ==================
	companies := []*domain.Company{
		{
			Name: "Acme Care", Email: "care@acme.io", PasswordHash: hash("company123"),
			PhoneNumber: "+91 80 4000 1000", Website: "https://acme.io", Industry: "Electronics",
			Address:     domain.Address{Street: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001", Country: "India"},
			Description: "Device protection for phones and laptops", ContactPerson: "Meera Rao",
			ContactEmail: "meera@acme.io", IsVerified: true, IsActive: true,
		},
		{
			Name: "Shield Co", Email: "hello@shield.co", PasswordHash: hash("company123"),
			Industry: "Home appliances", FoundedYear: 2011, IsActive: true,
		},
	}
	for _, c := range companies {
		if err := create(c); err != nil {
			return fmt.Errorf("company %s: %w", c.Email, err)
		}
		lg.Info("company created", zap.String("email", c.Email), zap.Int("profileCompletion", c.ProfileCompletion))
	}

	// ================== PLANS ==================
	plans := []*domain.Plan{
		{CompanyID: companies[0].ID, Name: "Screen Shield", Price: decimal.NewFromInt(999), Duration: 365,
			Features: []string{"Screen replacement", "Doorstep pickup"}, Coverage: "Accidental screen damage", Terms: "One claim per year", Active: true},
		{CompanyID: companies[0].ID, Name: "Laptop Extended", Price: decimal.RequireFromString("2499.50"), Duration: 730,
			Features: []string{"Parts", "Labour"}, Coverage: "Manufacturing defects", Terms: "Two claims", Active: true},
		{CompanyID: companies[1].ID, Name: "Appliance Monthly", Price: decimal.NewFromInt(149), Duration: 30,
			Features: []string{"Technician visit"}, Coverage: "Breakdown", Terms: "Renews monthly", Active: false},
	}
	for _, p := range plans {
		if err := create(p); err != nil {
			return fmt.Errorf("plan %s: %w", p.Name, err)
		}
	}

	// ================== USERS ==================
	users := []*domain.User{
		{Name: "Asha Nair", PhoneNumber: "9000000001", Email: "asha@example.com", PasswordHash: hash("user123")},
		{Name: "Ravi Kumar", PhoneNumber: "9000000002", Email: "ravi@example.com", PasswordHash: hash("user123")},
	}
	for _, u := range users {
		if err := create(u); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
	}

	// ================== BILLS ==================
	bills := []*domain.Bill{
		{UserID: users[0].ID, ProductName: "Pixel 8", PurchaseDate: now.AddDate(-1, 0, 10), WarrantyPeriodMonths: 12,
			ReminderBeforeExpiry: 15, StoreName: "Croma", TotalAmount: decimal.NewFromInt(59999), InvoiceFileURL: "/static/uploads/demo/pixel8.pdf"},
		{UserID: users[0].ID, ProductName: "Air fryer", PurchaseDate: now.AddDate(-2, 0, 0), WarrantyPeriodMonths: 12,
			StoreName: "Amazon", TotalAmount: decimal.NewFromInt(6499), InvoiceFileURL: "/static/uploads/demo/airfryer.png"},
		{UserID: users[1].ID, ProductName: "ThinkPad X1", PurchaseDate: now.AddDate(0, -3, 0), WarrantyPeriodMonths: 36,
			StoreName: "Lenovo", TotalAmount: decimal.NewFromInt(145000), InvoiceFileURL: "/static/uploads/demo/x1.pdf"},
	}
	for _, b := range bills {
		if err := create(b); err != nil {
			return fmt.Errorf("bill %s: %w", b.ProductName, err)
		}
	}

	// ================== PURCHASES ==================
	purchases := make([]*domain.Purchase, 0, len(users))
	for i, u := range users {
		plan := plans[i]
		// backdate so one purchase shows up in the expiring-soon list
		bought := now.AddDate(0, 0, -plan.Duration+3+i*60)
		uid := u.ID
		p := &domain.Purchase{
			PlanID: plan.ID, UserID: &uid,
			CustomerName: u.Name, CustomerEmail: u.Email, CustomerPhone: u.PhoneNumber,
			DeviceDetails: "Demo device", PaymentMethod: domain.PaymentUPI,
			Status: domain.PurchaseStatusActive, PurchaseDate: bought,
			ExpiryDate: domain.ExpiryFor(bought, plan.Duration), Amount: plan.Price,
		}
		if err := create(p); err != nil {
			return fmt.Errorf("purchase for %s: %w", u.Email, err)
		}
		purchases = append(purchases, p)
	}

	// ================== CLAIMS ==================
	claim := &domain.Claim{
		UserID: users[0].ID, PlanID: plans[0].ID, CompanyID: plans[0].CompanyID,
		DeviceDetails: purchases[0].DeviceDetails, IssueDescription: "Screen cracked after a fall",
		Amount: decimal.NewFromInt(4500), Status: domain.ClaimStatusPending, ClaimDate: now,
		Documents: []domain.ClaimDocument{{URL: "/static/uploads/demo/screen.jpg", Type: "image"}},
	}
	if err := create(claim); err != nil {
		return fmt.Errorf("claim: %w", err)
	}

	lg.Info("demo logins",
		zap.Strings("companies", []string{"care@acme.io / company123", "hello@shield.co / company123"}),
		zap.Strings("users", []string{"asha@example.com / user123", "ravi@example.com / user123"}),
	)
	return nil
}
