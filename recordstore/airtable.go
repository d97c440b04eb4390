package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"postgen/config"
)

// maxErrorBody caps how much of an error response ends up in the error text.
const maxErrorBody = 512

type airtableRecord struct {
	ID          string `json:"id,omitempty"`
	CreatedTime string `json:"createdTime,omitempty"`
	Fields      Fields `json:"fields"`
}

type createRecordsPayload struct {
	Records []airtableRecord `json:"records"`
}

type createRecordsResp struct {
	Records []airtableRecord `json:"records"`
}

// Airtable creates records through the Airtable REST API.
type Airtable struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewAirtable builds the client for cfg. A nil client uses a default one
// whose timeout is left to the transport.
func NewAirtable(cfg config.AirtableConfig, client *http.Client) (*Airtable, error) {
	if !cfg.Configured() {
		return nil, errors.New("airtable config must include api_key and base_id")
	}
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultAirtableBaseURL
	}
	table := cfg.Table
	if table == "" {
		table = config.DefaultAirtableTable
	}
	endpoint, err := url.JoinPath(base, cfg.BaseID, table)
	if err != nil {
		return nil, fmt.Errorf("airtable endpoint: %w", err)
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Airtable{endpoint: endpoint, apiKey: cfg.APIKey, client: client}, nil
}

// FromConfig picks the RecordStore for cfg: Unconfigured when credentials are
// missing, Airtable otherwise.
func FromConfig(cfg *config.AirtableConfig, timeout time.Duration) (RecordStore, error) {
	if !cfg.Configured() {
		return Unconfigured{}, nil
	}
	return NewAirtable(*cfg, &http.Client{Timeout: timeout})
}

func (a *Airtable) CreateRecord(ctx context.Context, fields Fields) (string, error) {
	body, err := json.Marshal(createRecordsPayload{Records: []airtableRecord{{Fields: fields}}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("airtable error: %d %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var data createRecordsResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode airtable response: %w", err)
	}
	if len(data.Records) == 0 || data.Records[0].ID == "" {
		return "", errors.New("airtable response carried no record id")
	}
	return data.Records[0].ID, nil
}
