package events

import (
    "context"
    "time"
)

type QuoteIssued struct {
    QuoteID       string
    PlaceID       string
    Address       string
    ProjectAcres  float64
    TotalEstimate float64
    Zone          string
    IssuedAt      time.Time
}

type Publisher interface {
    PublishQuoteIssued(ctx context.Context, evt QuoteIssued)
    SubscribeQuoteIssued() <-chan QuoteIssued
}

type inMemory struct { ch chan QuoteIssued }

// NewInMemory drops events when nobody drains the buffer; publishing never blocks a quote.
func NewInMemory(buffer int) Publisher {
    if buffer <= 0 { buffer = 256 }
    return &inMemory{ ch: make(chan QuoteIssued, buffer) }
}

func (m *inMemory) PublishQuoteIssued(_ context.Context, evt QuoteIssued) {
    select { case m.ch <- evt: default: }
}

func (m *inMemory) SubscribeQuoteIssued() <-chan QuoteIssued { return m.ch }
