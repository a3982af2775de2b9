package util

import (
	"context"
	"log"
	"net/http"
	"time"
)

// KeepAlive pings targetURL every interval until ctx is cancelled. Hosting
// platforms with idle spin-down stay warm this way; failures are logged and
// otherwise ignored.
func KeepAlive(ctx context.Context, targetURL string, interval time.Duration) {
	client := &http.Client{Timeout: 30 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
			if err != nil {
				log.Printf("ERROR: Keep-alive request setup failed: %v", err)
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				log.Printf("ERROR: Keep-alive ping failed: %v", err)
				continue
			}
			resp.Body.Close()
		}
	}
}
