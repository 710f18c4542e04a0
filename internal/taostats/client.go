package taostats

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const requestTimeout = 30 * time.Second

// raoPerTao converts the API's fixed-point integer unit to TAO.
var raoPerTao = decimal.New(1, 9)

// Client queries a Taostats-compatible accounting API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log.With().Str("component", "taostats").Logger(),
	}
}

// ResolveDateRange derives the query window ending at now (UTC).
func ResolveDateRange(now time.Time, lookbackDays int) DateRange {
	end := now.UTC()
	return DateRange{
		Start: end.AddDate(0, 0, -lookbackDays),
		End:   end,
		Days:  lookbackDays,
	}
}

// FetchEarnings queries each coldkey sequentially and returns one Earning per
// coldkey that reported income, preserving input order. A transport or HTTP
// error on any coldkey aborts the whole fetch; a coldkey with no data rows or
// an unreadable income figure is skipped.
func (c *Client) FetchEarnings(coldkeys []string, dr DateRange, network string) ([]Earning, error) {
	if len(coldkeys) == 0 {
		return nil, fmt.Errorf("no coldkeys to query")
	}
	if dr.Days < 0 {
		return nil, fmt.Errorf("lookback must not be negative, got %d", dr.Days)
	}

	earnings := make([]Earning, 0, len(coldkeys))
	for _, coldkey := range coldkeys {
		amount, ok, err := c.fetchIncome(coldkey, dr, network)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		earnings = append(earnings, Earning{Coldkey: coldkey, Amount: amount})
	}
	return earnings, nil
}

func (c *Client) fetchIncome(coldkey string, dr DateRange, network string) (decimal.Decimal, bool, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/accounting/v1", nil)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("build accounting request: %w", err)
	}

	query := req.URL.Query()
	query.Set("network", network)
	query.Set("date_start", dr.StartDate())
	query.Set("date_end", dr.EndDate())
	query.Set("coldkey", coldkey)
	query.Set("page", "1")
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("query earnings for %s: %w", coldkey, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decimal.Zero, false, fmt.Errorf("accounting API returned status %d for %s", resp.StatusCode, coldkey)
	}

	var payload accountingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, false, fmt.Errorf("decode accounting response for %s: %w", coldkey, err)
	}
	if len(payload.Data) == 0 {
		c.log.Debug().Str("coldkey", coldkey).Msg("no earnings rows, skipping")
		return decimal.Zero, false, nil
	}

	income, err := parseIncome(payload.Data[0].Income)
	if err != nil {
		c.log.Debug().Str("coldkey", coldkey).Err(err).Msg("unreadable income figure, skipping")
		return decimal.Zero, false, nil
	}
	return income.Div(raoPerTao), true, nil
}

// parseIncome reads the raw income field as a base-unit integer. Anything
// else, a string, a float, or a missing field, is an error the caller treats
// as a skip.
func parseIncome(raw json.RawMessage) (decimal.Decimal, error) {
	rao, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(rao), nil
}
