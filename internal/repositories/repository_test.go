package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teslo/internal/database"
	"teslo/internal/models"
)

// newTestDB opens a private in-memory sqlite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("teslo"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomProduct() models.Product {
	return models.Product{
		Title:       gofakeit.ProductName(),
		Slug:        gofakeit.UUID(),
		Description: gofakeit.Sentence(8),
		Images:      []string{gofakeit.URL(), gofakeit.URL()},
		InStock:     gofakeit.IntRange(0, 50),
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Sizes:       []string{"S", "M", "L"},
		Tags:        []string{gofakeit.Word()},
		Type:        "shirts",
		Gender:      gofakeit.RandomString([]string{"men", "women", "kid", "unisex"}),
	}
}

func randomOrder(userID string) models.Order {
	return models.Order{
		UserID: userID,
		OrderItems: []models.OrderItem{
			{ProductID: gofakeit.UUID(), Title: gofakeit.ProductName(), Size: "M", Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: gofakeit.UUID(), Title: gofakeit.ProductName(), Size: "L", Quantity: 1, Price: decimal.RequireFromString("5.00")},
		},
		ShippingAddress: models.ShippingAddress{
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Address:   gofakeit.Street(),
			City:      gofakeit.City(),
			Zip:       gofakeit.Zip(),
			Country:   "FR",
			Phone:     gofakeit.Phone(),
		},
		NumberOfItems: 3,
		SubTotal:      decimal.RequireFromString("25.00"),
		Taxes:         decimal.RequireFromString("5.25"),
		Total:         decimal.RequireFromString("30.25"),
	}
}
