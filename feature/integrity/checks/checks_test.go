package checks

import (
	"context"
	"errors"
	"testing"

	"ygo-pipelines/core/storage/mocks"
	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/cards/store"
	"ygo-pipelines/feature/cards/store/storetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

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

func showColumns(cols ...[2]string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, c := range cols {
		rows.AddRow(c[0], c[1], "YES", "", nil, "")
	}
	return rows
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil)
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_MigratedDatabase(t *testing.T) {
	report, err := CheckSchema(storetest.New(t))
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Len(t, report.Tables, 3)
	assert.Empty(t, report.Errors)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `ygo_card_metadata`").WillReturnRows(showColumns(
		[2]string{"id", "int(11)"},
		[2]string{"name", "text"},
		[2]string{"atk", "int(11)"},
		[2]string{"level", "varchar(10)"},
	))
	mock.ExpectQuery("SHOW COLUMNS FROM `ygo_card_translations`").WillReturnError(errors.New("access denied"))
	mock.ExpectQuery("SHOW COLUMNS FROM `ygo_banlist`").WillReturnRows(showColumns(
		[2]string{"card_id", "int(11)"},
		[2]string{"card_name", "varchar(255)"},
		[2]string{"ban_tcg", "text"},
		[2]string{"ban_ocg", "text"},
		[2]string{"ban_goat", "text"},
		[2]string{"updated_at", "datetime(3)"},
	))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.NoError(t, mock.ExpectationsWereMet())

	meta := report.Tables["ygo_card_metadata"]
	assert.Equal(t, "error", meta.Status)
	assert.Contains(t, meta.MissingColumns, "image_url_s3")
	assert.Contains(t, meta.MissingColumns, "details")
	assert.NotContains(t, meta.MissingColumns, "atk")
	assert.Equal(t, []string{"level: expected integer, got varchar(10)"}, meta.TypeMismatches)

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "ygo_card_translations")

	assert.Equal(t, "ok", report.Tables["ygo_banlist"].Status)
}

func TestParseGormTags(t *testing.T) {
	assert.Equal(t, "id", parseGormColumn("column:id;primaryKey"))
	assert.Equal(t, "ban_tcg", parseGormColumn("column:ban_tcg;type:text;check:ban_tcg IN ('Forbidden')"))
	assert.Equal(t, "", parseGormColumn("foreignKey:CardID;references:ID"))
	assert.Equal(t, "integer", parseGormType("column:atk;type:integer"))
	assert.Equal(t, "", parseGormType("column:id"))
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, typeMatches("integer", "int4"))
	assert.True(t, typeMatches("integer", "bigint(20)"))
	assert.True(t, typeMatches("text", "longtext"))
	assert.True(t, typeMatches("TEXT", "character varying"))
	assert.False(t, typeMatches("integer", "text"))
}

func TestCheckStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingPrefix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "cards").Return(true, nil)
		client.On("HasPrefix", mock.Anything, "cards", "cards/").Return(true, nil)
		client.On("HasPrefix", mock.Anything, "cards", "cards_cropped/").Return(false, nil)

		report, err := CheckStorage(ctx, client, "cards")
		require.NoError(t, err)
		assert.Equal(t, []string{"cards_cropped/"}, report.Missing)
		assert.True(t, report.Prefixes["cards/"])
	})

	t.Run("NoBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "cards").Return(false, nil)

		_, err := CheckStorage(ctx, client, "cards")
		assert.ErrorContains(t, err, "does not exist")
	})
}

func TestCheckImages(t *testing.T) {
	ctx := context.Background()
	s := store.New(storetest.New(t))
	for id := 1; id <= 3; id++ {
		card := models.CardMetadata{ID: id, Name: "card"}
		require.NoError(t, s.WriteBundle(ctx, store.BundleWrite{CardID: id, Card: &card}))
	}
	require.NoError(t, s.RecordImageURL(ctx, 1, models.VariantFull, "u"))

	report, err := CheckImages(ctx, s)
	require.NoError(t, err)
	assert.EqualValues(t, 2, report.Pending[models.VariantFull])
	assert.EqualValues(t, 3, report.Pending[models.VariantCropped])
}
