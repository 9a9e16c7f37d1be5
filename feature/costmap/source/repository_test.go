package source

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/element"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestRepository_LoadElements(t *testing.T) {
	gdb, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"global_id", "ebkp_code", "area", "length", "volume"}).
		AddRow("w1", "C2.1", 12.5, 0, 0).
		AddRow("w2", "C2.1", 0, 0, 4.2)

	mock.ExpectQuery("SELECT \\* FROM `model_elements`").WillReturnRows(rows)

	repo := NewRepository(gdb, "model_elements")
	elements, err := repo.LoadElements(context.Background())
	require.NoError(t, err)
	require.Len(t, elements, 2)

	assert.Equal(t, "w1", elements[0].ID)
	assert.Equal(t, "C2.1", elements[0].Code)
	assert.Equal(t, 12.5, elements[0].Quantities[element.KindArea])
	assert.Equal(t, 4.2, elements[1].Quantities[element.KindVolume])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LoadElements_QueryError(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `model_elements`").
		WillReturnError(assert.AnError)

	repo := NewRepository(gdb, "model_elements")
	_, err := repo.LoadElements(context.Background())
	assert.Error(t, err)
}
