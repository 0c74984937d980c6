package app

import (
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		APIKey:    "k",
		APIURL:    "http://127.0.0.1:0",
		APIFormat: "xml",
		Start:     models.YearMonth{Year: 2024, Month: 1},
		End:       models.YearMonth{Year: 2024, Month: 2},
		BatchSize: 100,
		SQLOutput: filepath.Join(t.TempDir(), "out.sql"),
		DBDriver:  "sqlite",
		DBConn:    ":memory:",
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNewIngest_MissingCredential(t *testing.T) {
	cfg := testConfig(t)
	cfg.APIKey = ""
	_, err := NewIngest(cfg, nil, quietLogger())
	assert.ErrorIs(t, err, config.ErrMissingCredential)
}

func TestNewIngest_EmptyWindow(t *testing.T) {
	cfg := testConfig(t)
	cfg.Start, cfg.End = cfg.End, cfg.Start
	_, err := NewIngest(cfg, nil, quietLogger())
	assert.Error(t, err)
}

func TestNewIngest_ApplyDirect(t *testing.T) {
	cfg := testConfig(t)
	cfg.ApplyDirect = true

	_, err := NewIngest(cfg, nil, quietLogger())
	assert.Error(t, err)

	db, err := OpenDB(cfg)
	require.NoError(t, err)
	defer db.Close()
	svc, err := NewIngest(cfg, db, quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.DBDriver = "postgres"
	_, err = NewIngest(cfg, &sql.DB{}, quietLogger())
	assert.Error(t, err)
}

func TestNewIngest_Tool(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBTool = "npx wrangler d1 execute"
	svc, err := NewIngest(cfg, nil, quietLogger())
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
