package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryDeliversAndDropsWhenFull(t *testing.T) {
	p := NewInMemory(1)
	ctx := context.Background()
	p.PublishQuoteIssued(ctx, QuoteIssued{QuoteID: "a"})
	p.PublishQuoteIssued(ctx, QuoteIssued{QuoteID: "b"}) // buffer full, dropped

	got := <-p.SubscribeQuoteIssued()
	assert.Equal(t, "a", got.QuoteID)
	select {
	case evt := <-p.SubscribeQuoteIssued():
		t.Fatalf("unexpected event %v", evt)
	default:
	}
}
