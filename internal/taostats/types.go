package taostats

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Earning is one coldkey's earnings over the queried window, in TAO.
type Earning struct {
	Coldkey string
	Amount  decimal.Decimal
}

// DateRange is the query window, resolved from "now" and the lookback.
type DateRange struct {
	Start time.Time
	End   time.Time
	Days  int
}

func (dr DateRange) StartDate() string {
	return dr.Start.Format("2006-01-02")
}

func (dr DateRange) EndDate() string {
	return dr.End.Format("2006-01-02")
}

// SingleDay reports whether the window covers exactly one day.
func (dr DateRange) SingleDay() bool {
	return dr.Days == 1
}

// accountingResponse is the shape of /accounting/v1 responses. Income is the
// earnings figure in rao; raw JSON keeps a missing, malformed, or
// wrongly-typed field distinguishable from zero without failing the decode.
type accountingResponse struct {
	Data []accountingRow `json:"data"`
}

type accountingRow struct {
	Income json.RawMessage `json:"income"`
}
