package notion

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/jomei/notionapi"
)

// fakeQuerier returns canned query responses in order.
type fakeQuerier struct {
	mu        sync.Mutex
	responses []*notionapi.DatabaseQueryResponse
	err       error
	requests  []notionapi.DatabaseQueryRequest
	ids       []notionapi.DatabaseID
}

func (f *fakeQuerier) Query(_ context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ids = append(f.ids, id)
	f.requests = append(f.requests, *req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return &notionapi.DatabaseQueryResponse{}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// stubTransport answers every request with the same canned response.
type stubTransport struct {
	mu     sync.Mutex
	status int
	header http.Header
	body   string
	calls  int
	paths  []string
}

func (s *stubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.paths = append(s.paths, req.URL.Path)
	header := s.header
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: s.status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(s.body)),
		Request:    req,
	}, nil
}

func fastLimiter() *RateLimiter {
	return NewRateLimiterWithRate(1000, 100)
}

func testConfig() *Config {
	cfg, err := ParseConfig(testSettings())
	if err != nil {
		panic(err)
	}
	return cfg
}

func title(text string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: text}}}
}

func richText(blocks ...notionapi.RichText) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{RichText: blocks}
}

func dateProp(start notionapi.Date) *notionapi.DateProperty {
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start}}
}

func eventPage(id, header, content string) notionapi.Page {
	return notionapi.Page{
		ID: notionapi.ObjectID(id),
		Properties: notionapi.Properties{
			"header":  title(header),
			"content": richText(notionapi.RichText{PlainText: content}),
		},
	}
}
