package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_HasLink(t *testing.T) {
	assert.True(t, Span{Text: "docs", Href: "https://example.com"}.HasLink())
	assert.False(t, Span{Text: "plain"}.HasLink())
}
