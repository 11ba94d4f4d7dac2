package notion

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/eventbox/internal/core/domain"
	"github.com/custodia-labs/eventbox/internal/core/ports/driven"
)

// newTestConnector returns a connector whose clients use fake.
func newTestConnector(fake *fakeQuerier) (*Connector, *int) {
	created := 0
	c := New()
	c.newClient = func(string) *Client {
		created++
		return newClientWith(fake, fastLimiter())
	}
	return c, &created
}

func TestConnector_Type(t *testing.T) {
	var source driven.EventSource = New()

	assert.Equal(t, "notion", source.Type())
}

func TestConnector_Fetch(t *testing.T) {
	t.Run("maps every page", func(t *testing.T) {
		fake := &fakeQuerier{responses: []*notionapi.DatabaseQueryResponse{
			{Results: []notionapi.Page{
				eventPage("1", "Book club", "Chapter 3"),
				eventPage("2", "Hack night", "Bring a laptop"),
			}},
		}}
		connector, _ := newTestConnector(fake)

		events, err := connector.Fetch(context.Background(), testSettings())

		require.NoError(t, err)
		assert.Equal(t, []domain.Event{
			{ID: "1", Header: "Book club", Content: "Chapter 3"},
			{ID: "2", Header: "Hack night", Content: "Bring a laptop"},
		}, events)
	})

	t.Run("empty database", func(t *testing.T) {
		connector, _ := newTestConnector(&fakeQuerier{})

		events, err := connector.Fetch(context.Background(), testSettings())

		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("missing config fails before any request", func(t *testing.T) {
		fake := &fakeQuerier{}
		connector, created := newTestConnector(fake)

		_, err := connector.Fetch(context.Background(), domain.NotionSettings{DatabaseID: "db"})

		assert.ErrorIs(t, err, domain.ErrConfigMissing)
		assert.Zero(t, *created)
		assert.Empty(t, fake.requests)
	})

	t.Run("propagates query errors", func(t *testing.T) {
		connector, _ := newTestConnector(&fakeQuerier{err: errors.New("connection refused")})

		_, err := connector.Fetch(context.Background(), testSettings())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "fetch events")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("reuses client until the secret changes", func(t *testing.T) {
		connector, created := newTestConnector(&fakeQuerier{})

		_, _ = connector.Fetch(context.Background(), testSettings())
		_, _ = connector.Fetch(context.Background(), testSettings())
		assert.Equal(t, 1, *created)

		rotated := testSettings()
		rotated.Secret = "secret_new"
		_, _ = connector.Fetch(context.Background(), rotated)
		assert.Equal(t, 2, *created)
	})
}
