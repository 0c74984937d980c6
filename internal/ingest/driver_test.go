package ingest

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	region string
	ym     models.YearMonth
}

type fakeFetcher struct {
	calls   []call
	results map[call][]models.TransactionRecord
}

func (f *fakeFetcher) FetchTrades(_ context.Context, regionCode string, ym models.YearMonth) []models.TransactionRecord {
	c := call{region: regionCode, ym: ym}
	f.calls = append(f.calls, c)
	src := f.results[c]
	out := make([]models.TransactionRecord, len(src))
	copy(out, src)
	return out
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDriver_RunOrderAndAnnotation(t *testing.T) {
	regions := []models.Region{{Name: "A구", Code: "11111"}, {Name: "B구", Code: "22222"}}
	months := Months(models.YearMonth{Year: 2024, Month: 11}, models.YearMonth{Year: 2025, Month: 1})
	jan := models.YearMonth{Year: 2025, Month: 1}
	nov := models.YearMonth{Year: 2024, Month: 11}

	f := &fakeFetcher{results: map[call][]models.TransactionRecord{
		{"11111", jan}: {{RegionCode: "11111", AptName: "first", Amount: 1}},
		{"22222", nov}: {{RegionCode: "22222", AptName: "second", Amount: 2}, {RegionCode: "22222", AptName: "third", Amount: 3}},
	}}

	var sleeps []time.Duration
	d := NewDriver(f, regions, months, 750*time.Millisecond, quietLogger())
	d.sleep = func(_ context.Context, dur time.Duration) { sleeps = append(sleeps, dur) }

	records := d.Run(context.Background())

	require.Len(t, f.calls, 6)
	assert.Equal(t, 6, d.Requests())
	want := []call{
		{"11111", months[0]}, {"11111", months[1]}, {"11111", months[2]},
		{"22222", months[0]}, {"22222", months[1]}, {"22222", months[2]},
	}
	assert.Equal(t, want, f.calls)
	assert.Len(t, sleeps, 5)
	for _, s := range sleeps {
		assert.Equal(t, 750*time.Millisecond, s)
	}

	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].AptName)
	assert.Equal(t, "A구", records[0].RegionName)
	assert.Equal(t, "second", records[1].AptName)
	assert.Equal(t, "B구", records[1].RegionName)
	assert.Equal(t, "third", records[2].AptName)
}

func TestDriver_EmptyMonthsContinue(t *testing.T) {
	regions := []models.Region{{Name: "Test Region", Code: "00000"}}
	months := Months(models.YearMonth{Year: 2024, Month: 1}, models.YearMonth{Year: 2024, Month: 3})
	f := &fakeFetcher{}

	d := NewDriver(f, regions, months, 0, quietLogger())
	records := d.Run(context.Background())

	assert.Empty(t, records)
	assert.Len(t, f.calls, 3)
}

type cancellingFetcher struct {
	fakeFetcher
	after  int
	cancel context.CancelFunc
}

func (f *cancellingFetcher) FetchTrades(ctx context.Context, regionCode string, ym models.YearMonth) []models.TransactionRecord {
	out := f.fakeFetcher.FetchTrades(ctx, regionCode, ym)
	if len(f.calls) == f.after {
		f.cancel()
	}
	return append(out, models.TransactionRecord{RegionCode: regionCode, AptName: "apt", Amount: 1})
}

func TestDriver_StopsWhenCancelled(t *testing.T) {
	regions := []models.Region{{Name: "A구", Code: "11111"}, {Name: "B구", Code: "22222"}}
	months := Months(models.YearMonth{Year: 2024, Month: 1}, models.YearMonth{Year: 2024, Month: 3})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := &cancellingFetcher{after: 2, cancel: cancel}

	d := NewDriver(f, regions, months, 0, quietLogger())
	records := d.Run(ctx)

	assert.Len(t, f.calls, 2)
	assert.Len(t, records, 2)
}

func TestSleepContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sleepContext(ctx, time.Minute)
	assert.Less(t, time.Since(start), time.Second)
}
