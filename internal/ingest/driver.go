package ingest

import (
	"context"
	"time"

	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/sirupsen/logrus"
)

// Fetcher returns the trades reported for one district and month.
// Implementations swallow their own failures and return an empty slice.
type Fetcher interface {
	FetchTrades(ctx context.Context, regionCode string, ym models.YearMonth) []models.TransactionRecord
}

// Driver walks regions x months one request at a time
type Driver struct {
	fetcher Fetcher
	regions []models.Region
	months  []models.YearMonth
	delay   time.Duration
	log     *logrus.Logger
	sleep   func(ctx context.Context, d time.Duration)
}

// NewDriver initializes a new driver
func NewDriver(fetcher Fetcher, regions []models.Region, months []models.YearMonth, delay time.Duration, log *logrus.Logger) *Driver {
	return &Driver{
		fetcher: fetcher,
		regions: regions,
		months:  months,
		delay:   delay,
		log:     log,
		sleep:   sleepContext,
	}
}

// Requests is the number of fetches a full run issues
func (d *Driver) Requests() int {
	return len(d.regions) * len(d.months)
}

// Run fetches every (region, month) pair in order, waiting the configured
// delay between consecutive requests, and returns the accumulated records
// in request order. Once ctx is done no further requests are issued and the
// records collected so far are returned.
func (d *Driver) Run(ctx context.Context) []models.TransactionRecord {
	var all []models.TransactionRecord
	issued := 0
	for _, region := range d.regions {
		d.log.Infof("Collecting %s (%s), %d months", region.Name, region.Code, len(d.months))
		regionTotal := 0
		for _, ym := range d.months {
			if issued > 0 {
				d.sleep(ctx, d.delay)
			}
			if ctx.Err() != nil {
				d.log.Warnf("Collection cancelled after %d of %d requests", issued, d.Requests())
				return all
			}
			issued++

			records := d.fetcher.FetchTrades(ctx, region.Code, ym)
			for i := range records {
				records[i].RegionName = region.Name
			}
			all = append(all, records...)
			regionTotal += len(records)
		}
		d.log.WithFields(logrus.Fields{"region": region.Code}).Infof("Collected %d records for %s", regionTotal, region.Name)
	}
	return all
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
