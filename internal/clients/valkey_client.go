package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

// seenUnitsKey is the set of text-unit hashes the scanner has already
// processed. Entries expire daily so re-scans of long-lived pages stay
// possible.
const (
	seenUnitsKey       = "textshield:processed_units"
	seenUnitsTTLSecond = 86400
)

// DedupClient tracks processed text units in a Valkey set so repeated
// scanner runs skip units they have already handled.
type DedupClient struct {
	client valkey.Client
}

// NewDedupClient connects to Valkey and verifies the connection with a
// ping before returning.
func NewDedupClient(addr, password string, useTLS bool) (*DedupClient, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{addr},
		Password:         password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if useTLS {
		opts.TLSConfig = &tls.Config{}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &DedupClient{client: client}, nil
}

func (d *DedupClient) Close() {
	d.client.Close()
}

// MarkProcessed records a unit hash in the processed set and refreshes the
// set TTL.
func (d *DedupClient) MarkProcessed(ctx context.Context, unitID string) error {
	completed := []valkey.Completed{
		d.client.B().Sadd().Key(seenUnitsKey).Member(unitID).Build(),
		d.client.B().Expire().Key(seenUnitsKey).Seconds(seenUnitsTTLSecond).Build(),
	}

	for _, res := range d.client.DoMulti(ctx, completed...) {
		if err := res.Error(); err != nil {
			return fmt.Errorf("mark processed: %w", err)
		}
	}
	return nil
}

// IsProcessed reports whether a unit hash is already in the processed set.
// Lookup failures are treated as not-processed; a duplicate rephrase is
// cheaper than a dropped unit.
func (d *DedupClient) IsProcessed(ctx context.Context, unitID string) bool {
	res := d.client.Do(ctx, d.client.B().Sismember().Key(seenUnitsKey).Member(unitID).Build())
	ok, err := res.AsBool()
	if err != nil {
		slog.Warn("[ValkeyClient] Processed lookup failed",
			slog.String("unit_id", unitID),
			slog.String("error", err.Error()))
		return false
	}
	return ok
}
