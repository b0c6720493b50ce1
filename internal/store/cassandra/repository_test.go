package cassandra

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gocql/gocql"

	"github.com/distrubuted-game-mechanic/hello-buttons/internal/config"
	"github.com/distrubuted-game-mechanic/hello-buttons/internal/models"
)

func TestTTLSeconds(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{500 * time.Millisecond, 1},
		{time.Hour, 3600},
	}

	for _, tt := range tests {
		if got := ttlSeconds(tt.ttl); got != tt.want {
			t.Errorf("ttlSeconds(%v) = %d, want %d", tt.ttl, got, tt.want)
		}
	}
}

func TestAttributesCodec(t *testing.T) {
	attrs := models.Attributes{
		"button_count":  json.RawMessage(`2`),
		"A_initialized": json.RawMessage(`true`),
	}

	raw, err := encodeAttributes(attrs)
	if err != nil {
		t.Fatalf("encodeAttributes failed: %v", err)
	}
	got, err := decodeAttributes(raw)
	if err != nil {
		t.Fatalf("decodeAttributes failed: %v", err)
	}
	if string(got["button_count"]) != "2" || string(got["A_initialized"]) != "true" {
		t.Errorf("Unexpected mapping: %v", got)
	}

	if raw, _ := encodeAttributes(nil); raw != "{}" {
		t.Errorf("Expected {} for nil mapping, got %s", raw)
	}
	if got, err := decodeAttributes(""); err != nil || len(got) != 0 {
		t.Errorf("Expected empty mapping for empty column, got %v (err %v)", got, err)
	}
	if _, err := decodeAttributes("{broken"); err == nil {
		t.Error("Expected error for corrupt column")
	}
}

func TestQueries(t *testing.T) {
	if q := insertQuery("ks"); !strings.Contains(q, "ks.session_attributes") || !strings.Contains(q, "USING TTL ?") {
		t.Errorf("Unexpected insert query: %s", q)
	}
	if q := selectQuery("ks"); !strings.Contains(q, "WHERE session_id = ?") {
		t.Errorf("Unexpected select query: %s", q)
	}
	stmts := schemaStatements("ks")
	if len(stmts) != 2 || !strings.Contains(stmts[1], "session_id text PRIMARY KEY") {
		t.Errorf("Unexpected schema: %v", stmts)
	}
}

func TestParseConsistency(t *testing.T) {
	tests := map[string]gocql.Consistency{
		"ONE":          gocql.One,
		"local_quorum": gocql.LocalQuorum,
		"LOCAL_ONE":    gocql.LocalOne,
		"":             gocql.Quorum,
		"bogus":        gocql.Quorum,
	}
	for in, want := range tests {
		if got := parseConsistency(in); got != want {
			t.Errorf("parseConsistency(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewCluster(t *testing.T) {
	cluster := newCluster(config.CassandraConfig{
		Hosts:       []string{"c1:9042", "c2:9042"},
		Keyspace:    "ks",
		Username:    "skill",
		Password:    "secret",
		Consistency: "LOCAL_QUORUM",
		Timeout:     3 * time.Second,
	})

	if len(cluster.Hosts) != 2 {
		t.Errorf("Expected 2 hosts, got %v", cluster.Hosts)
	}
	if cluster.Consistency != gocql.LocalQuorum {
		t.Errorf("Expected LOCAL_QUORUM, got %v", cluster.Consistency)
	}
	if cluster.Timeout != 3*time.Second || cluster.ConnectTimeout != 3*time.Second {
		t.Errorf("Unexpected timeouts: %v / %v", cluster.Timeout, cluster.ConnectTimeout)
	}
	if _, ok := cluster.Authenticator.(gocql.PasswordAuthenticator); !ok {
		t.Errorf("Expected password authenticator, got %T", cluster.Authenticator)
	}
}

func TestRetryPolicy(t *testing.T) {
	p := RetryPolicy(2)

	tests := []struct {
		err  error
		want gocql.RetryType
	}{
		{nil, gocql.Ignore},
		{gocql.ErrTimeoutNoResponse, gocql.Retry},
		{errors.New("connection reset by peer"), gocql.Retry},
		{errors.New("Cannot achieve consistency level: Unavailable"), gocql.Retry},
		{errors.New("syntax error"), gocql.Rethrow},
	}
	for _, tt := range tests {
		if got := p.GetRetryType(tt.err); got != tt.want {
			t.Errorf("GetRetryType(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestQueryContext(t *testing.T) {
	r := &Repository{timeout: time.Second}

	ctx, cancel, err := r.queryContext(context.Background())
	if err != nil {
		t.Fatalf("queryContext failed: %v", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Error("Expected the configured timeout to apply")
	}
	cancel()

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	if _, _, err := r.queryContext(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
