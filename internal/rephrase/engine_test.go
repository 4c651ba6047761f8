package rephrase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/textshield/textshield/internal/clients"
	"github.com/textshield/textshield/internal/models"
)

type stubRemote struct {
	result string
	err    error
	calls  int
}

func (s *stubRemote) Rewrite(_ context.Context, _ string, _ models.VerdictType) (string, error) {
	s.calls++
	return s.result, s.err
}

func TestEngineUsesRemoteWhenAvailable(t *testing.T) {
	req := require.New(t)

	remote := &stubRemote{result: "a kinder phrasing"}
	engine := NewEngine(remote)

	got := engine.Rephrase(context.Background(), "I hate this stupid product", models.VerdictWarning)
	req.Equal("a kinder phrasing", got.Rephrased)
	req.Equal("I hate this stupid product", got.Original)
	req.Equal(1, remote.calls)
}

func TestEngineFallsBackOnRemoteError(t *testing.T) {
	req := require.New(t)

	remote := &stubRemote{err: errors.New("service unavailable")}
	engine := NewEngine(remote)

	input := "I hate this stupid product, it sucks"
	got := engine.Rephrase(context.Background(), input, models.VerdictWarning)

	req.Equal(RuleBased(input, models.VerdictWarning), got)
	req.Equal(1, remote.calls)
}

func TestEngineFallsBackOnEmptyRemoteOutput(t *testing.T) {
	req := require.New(t)

	remote := &stubRemote{result: "   "}
	engine := NewEngine(remote)

	input := "this is terrible"
	got := engine.Rephrase(context.Background(), input, models.VerdictNegative)
	req.Equal(RuleBased(input, models.VerdictNegative), got)
}

func TestEngineWithoutRemoteIsRuleBased(t *testing.T) {
	req := require.New(t)

	engine := NewEngine(nil)
	input := "Everyone knows this always works"
	got := engine.Rephrase(context.Background(), input, models.VerdictInfo)
	req.Equal(RuleBased(input, models.VerdictInfo), got)
}

func TestEngineHealthGateSkipsRemote(t *testing.T) {
	req := require.New(t)

	remote := &stubRemote{result: "should not be used"}
	healthy := &atomic.Bool{}
	engine := NewEngine(remote).WithHealthGate(healthy)

	input := "I hate this stupid product"
	got := engine.Rephrase(context.Background(), input, models.VerdictWarning)
	req.Equal(RuleBased(input, models.VerdictWarning), got)
	req.Zero(remote.calls)

	healthy.Store(true)
	got = engine.Rephrase(context.Background(), input, models.VerdictWarning)
	req.Equal("should not be used", got.Rephrased)
	req.Equal(1, remote.calls)
}

func TestEngineFallsBackOnRemoteServerError(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := clients.NewOpenAIClient("test-key", srv.URL+"/v1", 5*time.Second)
	engine := NewEngine(NewOpenAIRewriter(client, ""))

	input := "I hate this stupid product, it sucks"
	got := engine.Rephrase(context.Background(), input, models.VerdictWarning)

	req.Equal(RuleBased(input, models.VerdictWarning), got)
	req.NotEmpty(got.Rephrased)
}
