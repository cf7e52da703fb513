package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/events"
)

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_NoResponseIsNotRetried(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	cfg := config.TrainingDeployment("http://training.test/api", time.Second, time.Second)
	c := New(cfg, &fakeCreds{credential: "sid-1"}, events.NewBus(), WithHTTPClient(hc))

	_, err := c.Call(context.Background(), &Request{Path: "/home/statistics"})
	require.Error(t, err)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, KindNoResponse, tErr.Kind)
	assert.Equal(t, msgNoResponse, Message(err))
	hc.AssertNumberOfCalls(t, "Do", 1)
}

func TestClient_BearerTransport(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://market.test/api/v1/auth/current" &&
			req.Header.Get("Authorization") == "Bearer tok-1" &&
			req.Header.Get("Session-ID") == ""
	})).Return(jsonResponse(http.StatusOK, `{"code":200,"message":"ok","data":{"id":2}}`), nil).Once()

	cfg := config.MarketDeployment("http://market.test", time.Second, time.Second)
	c := New(cfg, &fakeCreds{credential: "tok-1"}, events.NewBus(), WithHTTPClient(hc))

	env, err := c.Call(context.Background(), &Request{Path: "/api/v1/auth/current"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2}`, string(env.Data))
	hc.AssertExpectations(t)
}

func TestClient_EnvelopeUnauthorizedThroughTransport(t *testing.T) {
	hc := new(MockHTTPClient)
	hc.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusOK, `{"code":401,"message":"session expired, please log in again","data":null}`), nil)

	bus := events.NewBus()
	var got []events.AuthExpired
	bus.Subscribe(func(ev events.AuthExpired) { got = append(got, ev) })

	creds := &fakeCreds{credential: "sid-1"}
	cfg := config.TrainingDeployment("http://training.test/api", time.Second, time.Second)
	c := New(cfg, creds, bus, WithHTTPClient(hc))

	_, err := c.Call(context.Background(), &Request{Path: "/employee/scores"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "session expired, please log in again", Message(err))
	assert.Equal(t, 1, creds.clears)
	require.Len(t, got, 1)
	assert.Equal(t, events.SourceEnvelope, got[0].Source)
}
