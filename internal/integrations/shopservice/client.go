package shopservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент системы бронирования магазина.
// Повторных попыток нет: решение о повторе принимает вызывающая сторона.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetItem получает карточку товара
func (c *Client) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	var item Item
	if err := c.get(ctx, fmt.Sprintf("/internal/items/%d", itemID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetReservations получает подтвержденные резервации товара, заканчивающиеся не раньше from
func (c *Client) GetReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error) {
	query := url.Values{}
	if !from.IsZero() {
		query.Set("from", from.String())
	}

	var reservations []Reservation
	if err := c.get(ctx, fmt.Sprintf("/internal/items/%d/reservations", itemID), query, &reservations); err != nil {
		return nil, err
	}

	ranges := make([]domain.ReservedRange, 0, len(reservations))
	for _, r := range reservations {
		ranges = append(ranges, r.ToDomain())
	}

	c.log.Info("Fetched %d reservations from shop for item_id=%d", len(ranges), itemID)
	return ranges, nil
}

// GetStock получает количество единиц товара
func (c *Client) GetStock(ctx context.Context, itemID int64) (domain.StockInfo, error) {
	var stock Stock
	if err := c.get(ctx, fmt.Sprintf("/internal/items/%d/stock", itemID), nil, &stock); err != nil {
		return domain.StockInfo{}, err
	}
	if stock.TotalUnits < 0 {
		return domain.StockInfo{}, fmt.Errorf("%w: negative stock %d for item_id=%d", ErrInvalidResponse, stock.TotalUnits, itemID)
	}
	return domain.StockInfo{TotalUnits: stock.TotalUnits}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Shop service request failed: GET %s: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrItemNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Warn("Shop service returned %d for GET %s", resp.StatusCode, path)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
