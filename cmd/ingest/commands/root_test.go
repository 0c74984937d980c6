package commands

import (
	"testing"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlags(t *testing.T) {
	t.Cleanup(func() { startFlag, endFlag, outputFlag = "", "", "" })

	cfg := &config.Config{
		Start:     models.YearMonth{Year: 2022, Month: 12},
		End:       models.YearMonth{Year: 2025, Month: 11},
		SQLOutput: "/tmp/insert_trades.sql",
	}
	startFlag, endFlag, outputFlag = "202401", "202403", "out.sql"

	require.NoError(t, applyFlags(cfg))
	assert.Equal(t, models.YearMonth{Year: 2024, Month: 1}, cfg.Start)
	assert.Equal(t, models.YearMonth{Year: 2024, Month: 3}, cfg.End)
	assert.Equal(t, "out.sql", cfg.SQLOutput)

	startFlag = "2024-01"
	assert.Error(t, applyFlags(cfg))
}
