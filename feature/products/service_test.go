package products

import (
	"context"
	"regexp"
	"testing"
	"time"

	"merch-manager/core/catalog"
	"merch-manager/core/storage"
	"merch-manager/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func setupService(t *testing.T) (*Service, *mocks.Client, sqlmock.Sqlmock) {
	db, sqlMock := setupMockDB(t)
	client := new(mocks.Client)
	registry := catalog.NewRegistry([]string{"shirt", "lanyard", "sticker"})
	cfg := storage.Config{Bucket: "test-bucket", ImagePrefix: "products"}
	return NewService(NewRepository(db), client, cfg, registry, zap.NewNop()), client, sqlMock
}

var productColumns = []string{"product_id", "name", "type", "product_image", "price", "created_at"}

func q(s string) string { return regexp.QuoteMeta(s) }

// expectCatalog queues the queries LoadCatalog issues for the sample catalog.
func expectCatalog(m sqlmock.Sqlmock) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	m.ExpectQuery(q("SELECT * FROM `products`")).WillReturnRows(sqlmock.NewRows(productColumns).
		AddRow("p-shirt", "CCS T-Shirt", "shirt", nil, "350.00", now).
		AddRow("p-lanyard", "CCS Lanyard", "lanyard", nil, "120.00", now).
		AddRow("p-bundle", "Bundle A", "bundle", nil, "500.00", now))
	m.ExpectQuery(q("SELECT * FROM `items`")).WillReturnRows(
		sqlmock.NewRows([]string{"item_id", "product_id", "size", "color", "variant", "quantity"}).
			AddRow("i-1", "p-shirt", "Medium", "Black", "", 5).
			AddRow("i-2", "p-shirt", "Large", "Black", "", 2).
			AddRow("i-3", "p-lanyard", "", "", "", 10))
	m.ExpectQuery(q("SELECT * FROM `bundles`")).WillReturnRows(
		sqlmock.NewRows([]string{"bundle_id", "product_id"}).AddRow("bd-1", "p-bundle"))
	m.ExpectQuery(q("SELECT * FROM `bundle_items`")).WillReturnRows(
		sqlmock.NewRows([]string{"id", "bundle_id", "component_id", "quantity", "position"}).
			AddRow(1, "bd-1", "p-shirt", 1, 0).
			AddRow(2, "bd-1", "p-lanyard", 2, 1))
}

func TestRepository_LoadCatalog(t *testing.T) {
	svc, _, sqlMock := setupService(t)
	expectCatalog(sqlMock)

	entries, err := svc.repo.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "CCS T-Shirt", entries[0].Product.Name)
	assert.Len(t, entries[0].Items, 2)
	assert.Equal(t, 7, entries[0].TotalStock())
	assert.Equal(t, "350", entries[0].Product.Price.String())

	assert.True(t, entries[2].IsBundle())
	assert.Nil(t, entries[2].Items)
	assert.Equal(t, []catalog.Component{
		{ProductID: "p-shirt", Quantity: 1},
		{ProductID: "p-lanyard", Quantity: 2},
	}, entries[2].Components())

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_Get_NotFound(t *testing.T) {
	svc, _, sqlMock := setupService(t)
	sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id IN")).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_CreateItem(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		svc, _, sqlMock := setupService(t)
		notified := 0
		svc.OnChange(func() { notified++ })

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(q("INSERT INTO `products`")).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectExec(q("INSERT INTO `items`")).WillReturnResult(sqlmock.NewResult(0, 2))
		sqlMock.ExpectCommit()

		entry, err := svc.CreateItem(context.Background(), CreateItemRequest{
			Product: ProductInput{Name: "  CCS Hoodie ", Type: "Shirt"},
			Items: []ItemInput{
				{Size: "Small", Color: "Gray", Quantity: 3},
				{Size: "Large", Color: "Gray", Quantity: 0},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "CCS Hoodie", entry.Product.Name)
		assert.Equal(t, catalog.ProductType("shirt"), entry.Product.Type)
		assert.NotEmpty(t, entry.Product.ProductID)
		require.Len(t, entry.Items, 2)
		assert.Equal(t, entry.Product.ProductID, entry.Items[0].ProductID)
		assert.Equal(t, 1, notified)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	invalid := []struct {
		name string
		req  CreateItemRequest
		want error
	}{
		{"EmptyName", CreateItemRequest{Product: ProductInput{Name: " ", Type: "shirt"}}, ErrInvalidProduct},
		{"UnknownType", CreateItemRequest{Product: ProductInput{Name: "Mug", Type: "mug"}}, catalog.ErrInvalidProductType},
		{"BundleType", CreateItemRequest{Product: ProductInput{Name: "Set", Type: "bundle"}}, ErrInvalidProduct},
		{"NegativeQuantity", CreateItemRequest{
			Product: ProductInput{Name: "Pin", Type: "sticker"},
			Items:   []ItemInput{{Quantity: -1}},
		}, ErrInvalidProduct},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, sqlMock := setupService(t)
			_, err := svc.CreateItem(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestService_CreateBundle(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		svc, _, sqlMock := setupService(t)

		sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id IN")).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow("p-shirt", "CCS T-Shirt", "shirt", nil, "350", time.Now()))
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(q("INSERT INTO `products`")).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectExec(q("INSERT INTO `bundles`")).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectExec(q("INSERT INTO `bundle_items`")).WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()

		entry, err := svc.CreateBundle(context.Background(), CreateBundleRequest{
			Product: ProductInput{Name: "Starter Pack"},
			Bundle: BundleInput{Items: []catalog.Component{
				{ProductID: "p-shirt", Quantity: 1},
				{ProductID: "", Quantity: 3},
				{ProductID: "p-shirt", Quantity: 0},
			}},
		})
		require.NoError(t, err)

		assert.True(t, entry.IsBundle())
		assert.Equal(t, []catalog.Component{{ProductID: "p-shirt", Quantity: 1}}, entry.Components())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("NoComponents", func(t *testing.T) {
		svc, _, _ := setupService(t)
		_, err := svc.CreateBundle(context.Background(), CreateBundleRequest{
			Product: ProductInput{Name: "Empty"},
			Bundle:  BundleInput{Items: []catalog.Component{{ProductID: "p", Quantity: 0}}},
		})
		assert.ErrorIs(t, err, ErrInvalidComponent)
	})

	t.Run("NestedBundle", func(t *testing.T) {
		svc, _, sqlMock := setupService(t)
		sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id IN")).
			WillReturnRows(sqlmock.NewRows(productColumns).
				AddRow("p-bundle", "Bundle A", "bundle", nil, "500", time.Now()))

		_, err := svc.CreateBundle(context.Background(), CreateBundleRequest{
			Product: ProductInput{Name: "Mega"},
			Bundle:  BundleInput{Items: []catalog.Component{{ProductID: "p-bundle", Quantity: 1}}},
		})
		assert.ErrorIs(t, err, ErrInvalidComponent)
	})

	t.Run("MissingComponent", func(t *testing.T) {
		svc, _, sqlMock := setupService(t)
		sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id IN")).
			WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := svc.CreateBundle(context.Background(), CreateBundleRequest{
			Product: ProductInput{Name: "Ghost"},
			Bundle:  BundleInput{Items: []catalog.Component{{ProductID: "p-gone", Quantity: 1}}},
		})
		assert.ErrorIs(t, err, ErrInvalidComponent)
	})
}

func TestService_UpdateItem_WrongKind(t *testing.T) {
	svc, _, sqlMock := setupService(t)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id = ?")).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow("p-bundle", "Bundle A", "bundle", nil, "500", time.Now()))
	sqlMock.ExpectRollback()

	_, err := svc.UpdateItem(context.Background(), "p-bundle", UpdateItemRequest{Items: []ItemInput{{Quantity: 1}}})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_Delete(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		svc, _, sqlMock := setupService(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(q("SELECT * FROM `products` WHERE product_id = ?")).
			WillReturnRows(sqlmock.NewRows(productColumns))
		sqlMock.ExpectRollback()

		err := svc.Delete(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestRepository_Import(t *testing.T) {
	svc, _, sqlMock := setupService(t)

	entries := []catalog.Entry{
		{
			Product: catalog.Product{ProductID: "p-shirt", Name: "CCS T-Shirt", Type: "shirt"},
			Items:   []catalog.Item{{ItemID: "i-1", Size: "M", Quantity: 5}},
		},
		{
			Product: catalog.Product{ProductID: "p-bundle", Name: "Bundle A", Type: catalog.TypeBundle},
			Bundle: &catalog.Bundle{BundleID: "bd-1", Items: []catalog.Component{
				{ProductID: "p-shirt", Quantity: 1},
			}},
		},
	}

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(q("INSERT INTO `products`")).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(q("INSERT INTO `items`")).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(q("INSERT INTO `products`")).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(q("INSERT INTO `bundles`")).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(q("INSERT INTO `bundle_items`")).WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	require.NoError(t, svc.repo.Import(context.Background(), entries))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRows(t *testing.T) {
	p, items, b, components := rows(catalog.Entry{
		Product: catalog.Product{ProductID: "p-1", Type: catalog.TypeBundle},
		Bundle: &catalog.Bundle{BundleID: "bd-1", Items: []catalog.Component{
			{ProductID: "a", Quantity: 1},
			{ProductID: "b", Quantity: 2},
		}},
	})

	assert.Equal(t, "p-1", p.ProductID)
	assert.Empty(t, items)
	require.NotNil(t, b)
	assert.Equal(t, "p-1", b.ProductID)
	assert.Equal(t, 1, components[1].Position)
	assert.Equal(t, "bd-1", components[1].BundleID)
}
