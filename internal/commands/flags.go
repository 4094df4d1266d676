package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/reckon/internal/config"
	"github.com/cleared-dev/reckon/internal/period"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func parseDate(flag, s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, s)
	}
	return d, nil
}

// optionalDate parses s, returning fallback when s is empty.
func optionalDate(flag, s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return parseDate(flag, s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--amount: %q is not a number", s)
	}
	return d, nil
}

func today() time.Time {
	y, m, d := now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rangeFlags selects a report range either explicitly (--from/--to) or as
// the period of --period containing --month.
type rangeFlags struct {
	from, to string
	period   string
	month    string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.period, "period", "", "monthly, quarterly or yearly (default from reckon.yaml)")
	cmd.Flags().StringVar(&f.month, "month", "", "reference month, YYYY-MM (default current month)")
}

// periodType returns --period, or the configured default.
func (f *rangeFlags) periodType(cfg *config.Config) (period.Type, error) {
	if f.period == "" {
		return cfg.Period()
	}
	return period.Parse(f.period)
}

// referenceMonth returns the first day of --month, or of the current month.
func (f *rangeFlags) referenceMonth() (time.Time, error) {
	if f.month == "" {
		t := today()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	m, err := time.Parse(monthLayout, f.month)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month: want YYYY-MM, got %q", f.month)
	}
	return m, nil
}

// resolve returns the selected range.
func (f *rangeFlags) resolve(cfg *config.Config) (period.Range, error) {
	if f.from != "" || f.to != "" {
		var r period.Range
		var err error
		if f.from != "" {
			if r.From, err = parseDate("from", f.from); err != nil {
				return r, err
			}
		}
		if f.to != "" {
			if r.To, err = parseDate("to", f.to); err != nil {
				return r, err
			}
		}
		if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
			return r, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
		}
		return r, nil
	}

	typ, err := f.periodType(cfg)
	if err != nil {
		return period.Range{}, err
	}
	ref, err := f.referenceMonth()
	if err != nil {
		return period.Range{}, err
	}
	start, err := cfg.FiscalStartMonth()
	if err != nil {
		return period.Range{}, err
	}
	return period.ForFiscal(typ, ref, start), nil
}
