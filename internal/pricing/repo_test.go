package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A second connection to :memory: would see an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range []string{
		`CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			base_price NUMERIC NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE option_groups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			name TEXT NOT NULL,
			is_required BOOLEAN NOT NULL DEFAULT FALSE,
			selection_type TEXT NOT NULL DEFAULT 'single',
			min_select INTEGER NOT NULL DEFAULT 0,
			max_select INTEGER NOT NULL DEFAULT 1,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE options (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			group_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			price_delta NUMERIC NOT NULL DEFAULT 0,
			replace_base_price BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	} {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func seedCatalog(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	for _, stmt := range []string{
		`INSERT INTO products (id, name, base_price) VALUES (1, 'بقلاوة بالفستق', 45), (2, 'كنافة', 50)`,
		`INSERT INTO option_groups (id, product_id, name, is_required, selection_type, min_select, max_select, sort_order)
			VALUES (10, 1, 'الحجم', TRUE, 'single', 1, 1, 0),
			       (11, 1, 'التغليف', FALSE, 'single', 0, 1, 1),
			       (20, 2, 'Topping', FALSE, 'multiple', 0, 3, 0),
			       (30, NULL, 'Unassigned', TRUE, 'single', 1, 1, 0)`,
		`INSERT INTO options (id, group_id, name, price_delta, is_active, sort_order)
			VALUES (100, 10, 'صغير', 0, TRUE, 0),
			       (101, 10, 'كبير', 15, TRUE, 1),
			       (110, 11, 'علبة هدية', 10, FALSE, 0),
			       (200, 20, 'Pistachio', 5, TRUE, 0),
			       (300, 30, 'Orphan', 1, TRUE, 0)`,
	} {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
}

func TestRepositoryFindGroupsByProduct(t *testing.T) {
	gdb := openCatalogDB(t)
	seedCatalog(t, gdb)
	repo := NewRepository(gdb)

	groups, err := repo.FindGroupsByProduct(context.Background(), 1)
	require.NoError(t, err)

	// Sort order wins; NULL product_id groups never match.
	require.Len(t, groups, 2)
	require.Equal(t, "الحجم", groups[0].Name)
	require.Equal(t, "التغليف", groups[1].Name)
}

func TestRepositoryFindSelectedOptionsFilters(t *testing.T) {
	gdb := openCatalogDB(t)
	seedCatalog(t, gdb)
	repo := NewRepository(gdb)

	// 101 is valid, 110 is inactive, 200 belongs to another product, 300 hangs
	// off an unassigned group, 999 does not exist.
	options, err := repo.FindSelectedOptions(context.Background(), 1, []int64{101, 110, 200, 300, 999})
	require.NoError(t, err)

	require.Len(t, options, 1)
	require.Equal(t, int64(101), options[0].ID)
	require.Equal(t, "كبير", options[0].Name)
}

func TestRepositoryFindSelectedOptionsEmptyInput(t *testing.T) {
	gdb := openCatalogDB(t)
	repo := NewRepository(gdb)

	options, err := repo.FindSelectedOptions(context.Background(), 1, nil)
	require.NoError(t, err)
	require.Empty(t, options)
}

func TestRepositoryFindProductByID(t *testing.T) {
	gdb := openCatalogDB(t)
	seedCatalog(t, gdb)
	repo := NewRepository(gdb)

	product, err := repo.FindProductByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "بقلاوة بالفستق", product.Name)

	_, err = repo.FindProductByID(context.Background(), 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
