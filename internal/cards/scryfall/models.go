package scryfall

import (
	"fmt"
	"time"

	"github.com/mtgtools/commanderforge/internal/cards"
)

// SearchResult is the paginated response from /cards/search.
type SearchResult struct {
	Object     string                `json:"object"`
	TotalCards int                   `json:"total_cards"`
	HasMore    bool                  `json:"has_more"`
	NextPage   string                `json:"next_page,omitempty"`
	Data       []*cards.ScryfallCard `json:"data"`
}

// BulkDataInfo describes one downloadable bulk data file.
type BulkDataInfo struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "oracle_cards", "default_cards", ...
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DownloadURI string    `json:"download_uri"`
	UpdatedAt   time.Time `json:"updated_at"`
	Size        int64     `json:"size"`
}

// BulkDataList is the response from /bulk-data.
type BulkDataList struct {
	Data []BulkDataInfo `json:"data"`
}

// OracleCards returns the oracle-cards bulk entry, or nil if absent.
func (l *BulkDataList) OracleCards() *BulkDataInfo {
	for i := range l.Data {
		if l.Data[i].Type == "oracle_cards" {
			return &l.Data[i]
		}
	}
	return nil
}

// NotFoundError indicates a 404 from the Scryfall API.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// APIError is Scryfall's structured error response.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scryfall API error (%d %s): %s", e.Status, e.Code, e.Details)
}
