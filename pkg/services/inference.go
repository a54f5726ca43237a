package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"AgriBot/pkg/cache"
	"AgriBot/pkg/config"
)

// ErrInferenceFailed wraps every gateway failure: unreachable host, timeout,
// non-2xx status or an empty reply. Callers match it with errors.Is.
var ErrInferenceFailed = errors.New("inference failed")

// InferenceService talks to the external inference gateway:
// POST {base}/ask with {query, image, language} returning {reply}.
// There are no retries; a failed call surfaces as ErrInferenceFailed and the
// client decides whether to resubmit.
type InferenceService struct {
	baseURL string
	enabled bool
	timeout time.Duration
	replies *cache.Cache
}

func NewInferenceService() *InferenceService {
	return &InferenceService{
		baseURL: strings.TrimRight(config.InferenceBaseURL, "/"),
		enabled: config.IsInferenceEnabled,
		timeout: time.Duration(config.InferenceTimeoutSeconds) * time.Second,
		replies: cache.Default(),
	}
}

type askRequest struct {
	Query    string `json:"query"`
	Image    string `json:"image,omitempty"`
	Language string `json:"language"`
}

type askResponse struct {
	Reply string `json:"reply"`
}

// Ask sends one query to the gateway and returns the reply text. The call is
// bounded by the configured timeout and dies with ctx if the caller goes
// away. Identical recent submissions are answered from the reply cache
// without a second gateway round trip.
func (s *InferenceService) Ask(ctx context.Context, query, image, language string) (string, error) {
	// The gateway is told the language twice: as a field and as an explicit
	// instruction, since some models ignore the field.
	query = fmt.Sprintf("%s\n\nIMPORTANT: Use %s for the entire response.", query, language)

	if !s.enabled {
		log.Printf("[inference] disabled via config, answering locally")
		return AskAgronomyLocal(ctx, query, language), nil
	}
	if s.baseURL == "" {
		return "", fmt.Errorf("%w: INFERENCE_BASE_URL is not set", ErrInferenceFailed)
	}

	key := cache.KeyFromStrings("ask", query, image, language)
	if reply, ok := s.replies.GetReply(key); ok {
		log.Printf("[inference] reply cache hit")
		return reply, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bodyBytes, _ := json.Marshal(askRequest{Query: query, Image: image, Language: language})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/ask", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http error: %v", ErrInferenceFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read error: %v", ErrInferenceFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrInferenceFailed, resp.StatusCode,
			strings.TrimSpace(string(respBytes)))
	}

	var parsed askResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("%w: bad response body: %v", ErrInferenceFailed, err)
	}
	reply := strings.TrimSpace(parsed.Reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrInferenceFailed)
	}

	s.replies.SetReply(key, reply, time.Duration(config.ReplyCacheTTLSeconds)*time.Second)
	return reply, nil
}
