package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jomei/notionapi"
)

// responseRecorder captures what notionapi discards from one query response:
// the raw date starts (notionapi.Date cannot tell a date from a midnight UTC
// datetime) and the Retry-After of a 429.
type responseRecorder struct {
	body       []byte
	retryAfter time.Duration
}

type recorderKey struct{}

func withRecorder(ctx context.Context, rec *responseRecorder) context.Context {
	return context.WithValue(ctx, recorderKey{}, rec)
}

// recordingTransport tees response bodies into the request's recorder.
// Requests without a recorder pass through untouched.
type recordingTransport struct {
	base http.RoundTripper
}

func (t *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	rec, ok := req.Context().Value(recorderKey{}).(*responseRecorder)
	if !ok {
		return resp, nil
	}

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		rec.body = data
		resp.Body = io.NopCloser(bytes.NewReader(data))
	case http.StatusTooManyRequests:
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			rec.retryAfter = time.Duration(secs) * time.Second
		}
	}
	return resp, nil
}

// rawQueryResponse is the subset of a query response needed for date starts.
type rawQueryResponse struct {
	Results []struct {
		ID         notionapi.ObjectID `json:"id"`
		Properties map[string]struct {
			Type string `json:"type"`
			Date *struct {
				Start string `json:"start"`
			} `json:"date"`
		} `json:"properties"`
	} `json:"results"`
}

// dateStarts returns the date property starts per page, exactly as sent.
func (r *responseRecorder) dateStarts() map[notionapi.ObjectID]map[string]string {
	if len(r.body) == 0 {
		return nil
	}
	var raw rawQueryResponse
	if err := json.Unmarshal(r.body, &raw); err != nil {
		return nil
	}

	starts := make(map[notionapi.ObjectID]map[string]string, len(raw.Results))
	for _, page := range raw.Results {
		for name, prop := range page.Properties {
			if prop.Type != "date" || prop.Date == nil || prop.Date.Start == "" {
				continue
			}
			if starts[page.ID] == nil {
				starts[page.ID] = make(map[string]string)
			}
			starts[page.ID][name] = prop.Date.Start
		}
	}
	return starts
}
