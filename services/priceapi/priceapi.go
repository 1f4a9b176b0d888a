package priceapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"price-indexer/models/constants"

	"github.com/rs/zerolog/log"
)

func New(config Config) *Impl {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = clientHTTPTimeout
	}

	return &Impl{
		coinURL:   strings.TrimRight(config.CoinURL, "/"),
		fiatURL:   strings.TrimRight(config.FiatURL, "/"),
		accessKey: config.AccessKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCoinHistory requests the samples of a single day, both window bounds being that day.
func (service *Impl) FetchCoinHistory(ctx context.Context, symbol string, day string, samples int) (CoinHistory, error) {
	log.Debug().Str(constants.LogSymbol, symbol).Str(constants.LogDay, day).Msg("Fetching coin history")

	endpoint := fmt.Sprintf("%s/%s/%s/%s/%s/%d", service.coinURL, coinHistoryPath,
		url.PathEscape(symbol), day, day, samples)

	var result map[string][]Sample
	if err := service.get(ctx, coinHistoryPath, endpoint, &result); err != nil {
		return CoinHistory{}, err
	}

	history, found := result[symbol]
	if !found {
		return CoinHistory{}, &APIError{
			Endpoint:   coinHistoryPath,
			StatusCode: http.StatusOK,
			Status:     http.StatusText(http.StatusOK),
			Err:        fmt.Errorf("no history for %s", symbol),
		}
	}

	return CoinHistory{Symbol: symbol, Samples: history}, nil
}

func (service *Impl) FetchFiatHistory(ctx context.Context, symbol string, day string) (FiatQuote, error) {
	log.Debug().Str(constants.LogSymbol, symbol).Str(constants.LogDay, day).Msg("Fetching fiat history")

	params := url.Values{}
	params.Set("access_key", service.accessKey)
	params.Set("format", "1")
	params.Set("date", day)
	params.Set("currencies", quoteCurrency)
	params.Set("source", symbol)
	endpoint := fmt.Sprintf("%s/%s?%s", service.fiatURL, fiatHistoryPath, params.Encode())

	var result fiatResponse
	if err := service.get(ctx, fiatHistoryPath, endpoint, &result); err != nil {
		return FiatQuote{}, err
	}

	if result.Success != nil && !*result.Success {
		reason := errors.New("upstream reported a failure")
		if result.Error != nil {
			reason = fmt.Errorf("%d %s: %s", result.Error.Code, result.Error.Type, result.Error.Info)
		}
		return FiatQuote{}, &APIError{
			Endpoint:   fiatHistoryPath,
			StatusCode: http.StatusOK,
			Status:     http.StatusText(http.StatusOK),
			Err:        reason,
		}
	}

	pair := symbol + quoteCurrency
	price, found := result.Quotes[pair]
	if !found {
		return FiatQuote{}, &APIError{
			Endpoint:   fiatHistoryPath,
			StatusCode: http.StatusOK,
			Status:     http.StatusText(http.StatusOK),
			Err:        fmt.Errorf("quote %s is missing", pair),
		}
	}

	return FiatQuote{Symbol: symbol, Timestamp: result.Timestamp, PriceUSD: price}, nil
}

func (service *Impl) get(ctx context.Context, name string, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to prepare request: %w", err)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return &APIError{Endpoint: name, Status: "unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: name, StatusCode: resp.StatusCode, Status: statusText(resp)}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &APIError{
			Endpoint:   name,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Err:        fmt.Errorf("failed to parse response: %w", err),
		}
	}

	return nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return strconv.Itoa(resp.StatusCode) + " " + http.StatusText(resp.StatusCode)
}
