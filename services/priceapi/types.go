package priceapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	coinHistoryPath   = "get_coin_history"
	fiatHistoryPath   = "historical"
	quoteCurrency     = "USD"
	clientHTTPTimeout = 15 * time.Second
	minSampleFields   = 3
)

var ErrMalformedSample = errors.New("malformed sample")

// APIError is returned for every unusable upstream answer.
type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API request to %s failed with status %s: %v", e.Endpoint, e.Status, e.Err)
	}
	return fmt.Sprintf("API request to %s failed with status %s", e.Endpoint, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Sample is one observation of a coin; upstream sends [timestamp, price, volume, reserved].
type Sample struct {
	Timestamp int64
	Price     float64
	Volume24h float64
}

func (s *Sample) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) < minSampleFields {
		return fmt.Errorf("%w: %d fields", ErrMalformedSample, len(fields))
	}

	var timestamp, price float64
	var volume *float64
	if err := json.Unmarshal(fields[0], &timestamp); err != nil {
		return fmt.Errorf("%w: timestamp: %v", ErrMalformedSample, err)
	}
	if err := json.Unmarshal(fields[1], &price); err != nil {
		return fmt.Errorf("%w: price: %v", ErrMalformedSample, err)
	}
	if err := json.Unmarshal(fields[2], &volume); err != nil {
		return fmt.Errorf("%w: volume: %v", ErrMalformedSample, err)
	}

	s.Timestamp = int64(timestamp)
	s.Price = price
	if volume != nil {
		s.Volume24h = *volume
	}
	return nil
}

type CoinHistory struct {
	Symbol  string
	Samples []Sample
}

type FiatQuote struct {
	Symbol    string
	Timestamp int64
	PriceUSD  float64
	Volume24h *float64
}

type fiatResponse struct {
	Success   *bool              `json:"success,omitempty"`
	Timestamp int64              `json:"timestamp"`
	Source    string             `json:"source,omitempty"`
	Quotes    map[string]float64 `json:"quotes"`
	Error     *fiatErrorResponse `json:"error,omitempty"`
}

type fiatErrorResponse struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

type Service interface {
	FetchCoinHistory(ctx context.Context, symbol string, day string, samples int) (CoinHistory, error)
	FetchFiatHistory(ctx context.Context, symbol string, day string) (FiatQuote, error)
}

type Config struct {
	CoinURL   string
	FiatURL   string
	AccessKey string
	Timeout   time.Duration
}

type Impl struct {
	coinURL   string
	fiatURL   string
	accessKey string
	client    *http.Client
}
