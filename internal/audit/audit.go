package audit

import (
    "context"
    "log"
    "time"

    "github.com/yourorg/location-quote/internal/events"
)

// Logger consumes quote.issued events and writes one audit line per quote.
// Quotes are not persisted; this log is the only trail.
type Logger struct {
    Pub events.Publisher
    Log *log.Logger
}

func (a *Logger) Run(ctx context.Context) {
    sub := a.Pub.SubscribeQuoteIssued()
    for {
        select {
        case <-ctx.Done():
            return
        case evt := <-sub:
            a.write(evt)
        }
    }
}

func (a *Logger) write(evt events.QuoteIssued) {
    l := a.Log
    if l == nil { l = log.Default() }
    l.Printf("[INFO] quote.issued id=%s place=%s acres=%.2f total=%.2f zone=%q at=%s",
        evt.QuoteID, evt.PlaceID, evt.ProjectAcres, evt.TotalEstimate, evt.Zone, evt.IssuedAt.Format(time.RFC3339))
}
