// Package apify implements ports.ReviewSource backed by the Apify REST API.
// Each Open starts an actor run for one place URL; the resulting dataset is
// paged through the items endpoint to serve batches.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"reviewscraper/internal/config"
	"reviewscraper/internal/core/domain"
	"reviewscraper/internal/core/ports"
)

const (
	apifyBaseURL = "https://api.apify.com/v2"
	// compass/google-maps-reviews-scraper (internal Apify ID)
	reviewsActorID = "Xb8osYTtOjlsgI6k9"
	// Items fetched per dataset page. The session decides batch size,
	// not the worker.
	batchSize = 20
)

// ReviewSource starts Apify actor runs for Google Maps review extraction.
type ReviewSource struct {
	apiToken   string
	client     *http.Client
	userAgent  string
	pollDelay  config.DelayRange
	maxReviews int
}

// NewReviewSource creates a source using the given API token. maxReviews
// caps how many reviews the actor collects per place.
func NewReviewSource(apiToken string, maxReviews int, profile config.SpeedProfile) (*ReviewSource, error) {
	if apiToken == "" {
		return nil, fmt.Errorf("apify API token not set")
	}
	return &ReviewSource{
		apiToken:   apiToken,
		client:     &http.Client{Timeout: 5 * time.Minute},
		userAgent:  config.RandomUserAgent(false),
		pollDelay:  profile.LoadDelay,
		maxReviews: maxReviews,
	}, nil
}

// Open starts an actor run for the target URL, waits for it to finish and
// returns a session over the resulting dataset.
func (s *ReviewSource) Open(ctx context.Context, targetURL string) (ports.ReviewSession, error) {
	runID, err := s.startActorRun(ctx, targetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to start actor run: %w", err)
	}

	datasetID, err := s.waitForRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for actor run: %w", err)
	}

	return &session{source: s, datasetID: datasetID}, nil
}

func (s *ReviewSource) startActorRun(ctx context.Context, targetURL string) (string, error) {
	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", apifyBaseURL, reviewsActorID, s.apiToken)

	input := map[string]interface{}{
		"startUrls":           []map[string]string{{"url": targetURL}},
		"maxReviews":          s.maxReviews,
		"reviewsSort":         "newest",
		"language":            "en",
		"personalDataOptions": map[string]bool{"scrapeReviewerName": true, "scrapeReviewerUrl": true},
	}
	body, _ := json.Marshal(input)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to start actor: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.Data.ID, nil
}

func (s *ReviewSource) waitForRun(ctx context.Context, runID string) (string, error) {
	statusURL := fmt.Sprintf("%s/actor-runs/%s?token=%s", apifyBaseURL, runID, s.apiToken)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollDelay.Jitter()):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", s.userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			return "", err
		}

		var status struct {
			Data struct {
				Status           string `json:"status"`
				DefaultDatasetID string `json:"defaultDatasetId"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			resp.Body.Close()
			return "", err
		}
		resp.Body.Close()

		switch status.Data.Status {
		case "SUCCEEDED":
			return status.Data.DefaultDatasetID, nil
		case "FAILED", "ABORTED", "TIMED-OUT":
			return "", fmt.Errorf("actor run finished with status: %s", status.Data.Status)
		}
		// Still running, keep polling.
	}
}

// session pages through one completed dataset.
type session struct {
	source    *ReviewSource
	datasetID string
}

// NextBatch fetches up to batchSize items starting at offset. An empty
// slice means the dataset is exhausted.
func (se *session) NextBatch(ctx context.Context, offset int) ([]domain.Review, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s&offset=%d&limit=%d",
		apifyBaseURL, se.datasetID, se.source.apiToken, offset, batchSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", se.source.userAgent)

	resp, err := se.source.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status fetching dataset items: %d", resp.StatusCode)
	}

	var items []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode dataset items: %w", err)
	}

	reviews := make([]domain.Review, 0, len(items))
	retrievedAt := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, item := range items {
		reviews = append(reviews, itemToReview(item, retrievedAt))
	}
	return reviews, nil
}

// Close is a no-op; the actor run has already finished when the session
// is created.
func (se *session) Close() error {
	return nil
}

func itemToReview(item map[string]interface{}, retrievedAt string) domain.Review {
	return domain.Review{
		ID:            getString(item, "reviewId", "id"),
		Caption:       getString(item, "text", "caption"),
		MoreCaption:   getString(item, "textTranslated", "responseFromOwnerText"),
		RelativeDate:  getString(item, "publishAt", "relativeDate"),
		RetrievalDate: retrievedAt,
		Rating:        getNumber(item, "stars", "rating"),
		Username:      getString(item, "name", "reviewerName"),
		NumReviews:    getNumber(item, "reviewerNumberOfReviews"),
		NumPhotos:     getNumber(item, "reviewerPhotosCount"),
		ProfileURL:    getString(item, "reviewerUrl"),
	}
}

func getString(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if val, ok := item[key].(string); ok && val != "" {
			return val
		}
	}
	return ""
}

func getNumber(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch val := item[key].(type) {
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		case string:
			if val != "" {
				return val
			}
		}
	}
	return ""
}
