package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Remote is the remote document tier holding the full table as one unit.
type Remote interface {
	Name() string
	// Fetch returns the stored rows; an empty slice means no remote data.
	Fetch(ctx context.Context) ([]RawRow, error)
	Put(ctx context.Context, rows []Row) error
}

// StatusError is a non-200 answer from the remote endpoint.
type StatusError struct {
	Method string
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote %s: %s %s", e.Method, e.Status, e.Body)
}

// HTTPRemote talks to a JSONBin-style endpoint: GET answers {"record": [...]},
// PUT takes the bare array. Only HTTP 200 counts as success.
type HTTPRemote struct {
	URL    string
	Client *http.Client
	// AccessKey returns an optional key sent as X-Master-Key. An empty key
	// leaves requests unauthenticated.
	AccessKey func() string
}

func NewHTTPRemote(url string, timeout time.Duration, accessKey func() string) *HTTPRemote {
	return &HTTPRemote{
		URL:       url,
		Client:    &http.Client{Timeout: timeout},
		AccessKey: accessKey,
	}
}

func (h *HTTPRemote) Name() string { return "http" }

type document struct {
	Record []RawRow `json:"record"`
}

func (h *HTTPRemote) Fetch(ctx context.Context) ([]RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	h.decorate(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(http.MethodGet, resp)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("remote GET: decode: %w", err)
	}
	return doc.Record, nil
}

func (h *HTTPRemote) Put(ctx context.Context, rows []Row) error {
	b, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	h.decorate(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusErr(http.MethodPut, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (h *HTTPRemote) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if h.AccessKey == nil {
		return
	}
	if key := h.AccessKey(); key != "" {
		req.Header.Set("X-Master-Key", key)
	}
}

func statusErr(method string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return &StatusError{Method: method, Status: resp.Status, Body: string(b)}
}
