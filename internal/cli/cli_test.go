package cli

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/cache"
	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/handlers"
	"github.com/shiptrain/portal/internal/services"
	"github.com/shiptrain/portal/internal/storage"
	"github.com/shiptrain/portal/pkg/jwt"
)

// newMockAPI serves both surfaces the way cmd/mockapi mounts them
func newMockAPI(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock, err := fixtures.PinnedClock("2024-12-20")
	require.NoError(t, err)
	store := fixtures.New(fixtures.WithClock(clock))

	s := handlers.Services{
		Auth: services.NewAuthService(store, cache.NewSessionCache(time.Hour),
			jwt.NewTokenManager("cli-secret", "portal-cli-test", 1)),
		Training: services.NewTrainingService(store),
		Market:   services.NewMarketService(),
	}

	engine := gin.New()
	api := engine.Group("/api")
	handlers.RegisterTraining(api, s)
	handlers.RegisterMarket(api.Group("/v1"), s)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

// cliEnv runs commands against one server with sessions persisted in a temp sqlite file
type cliEnv struct {
	t       *testing.T
	baseURL string
	dir     string
}

func newCLIEnv(t *testing.T, srv *httptest.Server) *cliEnv {
	return &cliEnv{t: t, baseURL: srv.URL, dir: t.TempDir()}
}

func (e *cliEnv) config() (*config.Config, error) {
	return &config.Config{
		Storage: config.StorageConfig{
			Driver: storage.DriverSQLite,
			Path:   filepath.Join(e.dir, "portal.db"),
		},
		Fixtures: config.FixturesConfig{Today: "2024-12-20"},
		Deployments: map[string]config.DeploymentConfig{
			config.DeploymentTraining: config.TrainingDeployment(e.baseURL+"/api", 2*time.Second, 5*time.Second),
			config.DeploymentMarket:   config.MarketDeployment(e.baseURL, 2*time.Second, 5*time.Second),
		},
	}, nil
}

// run executes one CLI invocation with a fresh root command
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cmd := newRootCommand(&RootOptions{loadConfig: e.config})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeResponse(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestLogin_PersistsAcrossInvocations(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("login", "employee", "-p", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in to training as Liu (Employee) (Employee)")

	out, err = env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Liu (Employee) (employee)")

	out, err = env.run("whoami", "--remote", "--format", "json")
	require.NoError(t, err)
	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	user, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "employee", user["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("login", "employee", "-p", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	// HTTP 401 is reported with the fixed status message
	assert.Contains(t, out, "not logged in or session expired")

	out, err = env.run("whoami")
	require.Error(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestLogin_RequiresPassword(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("login", "employee")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLogout(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("login", "employee", "-p", "123456")
	require.NoError(t, err)

	out, err := env.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, err = env.run("logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}

func TestScores(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("login", "employee", "-p", "123456")
	require.NoError(t, err)

	out, err := env.run("scores")
	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "SCORE")

	out, err = env.run("scores", "--format", "json")
	require.NoError(t, err)
	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Data)
}

func TestScores_WrongRoleKeepsSession(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("login", "teacher", "-p", "123456")
	require.NoError(t, err)

	out, err := env.run("scores")
	require.Error(t, err)
	assert.Contains(t, out, "access denied")

	_, err = env.run("whoami")
	assert.NoError(t, err)
}

func TestScores_StaleSessionRedirectsToLogin(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("login", "employee", "-p", "123456")
	require.NoError(t, err)

	// a restarted backend no longer knows the stored session id
	env.baseURL = newMockAPI(t).URL

	out, err := env.run("scores")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E002]")
	assert.Contains(t, out, "navigated to /login")

	out, err = env.run("whoami")
	require.Error(t, err)
	assert.Contains(t, out, "not logged in")
}

func TestScores_OnlyOnTraining(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	_, err := env.run("scores", "-d", "market")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestOpen_GuardRedirects(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("open", "/employee/scores")
	require.Error(t, err)
	assert.Contains(t, out, "requires login, redirected to /login")

	_, err = env.run("login", "employee", "-p", "123456")
	require.NoError(t, err)

	out, err = env.run("open", "/employee/scores")
	require.NoError(t, err)
	assert.Contains(t, out, "/employee/scores -> employee/Scores")

	out, err = env.run("open", "/teacher/schedule", "--enforce-roles", "--format", "json")
	require.Error(t, err)
	resp := decodeResponse(t, out)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "forbidden", data["outcome"])
	assert.Equal(t, "/", data["location"])
}

func TestOpen_UnknownPathIsAllowed(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("open", "/nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "no such route")
}

func TestRoutes(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("routes")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "employee-scores")

	out, err = env.run("routes", "-d", "market")
	require.NoError(t, err)
	assert.Contains(t, out, "market-resource")
}

func TestFixtures(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))

	out, err := env.run("fixtures", "today", "--format", "json")
	require.NoError(t, err)
	resp := decodeResponse(t, out)
	courses, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, courses, 2)

	out, err = env.run("fixtures", "today", "--today", "1999-01-01")
	require.NoError(t, err)
	assert.Contains(t, out, "No classes today")

	out, err = env.run("fixtures", "types")
	require.NoError(t, err)
	assert.Contains(t, out, "AVERAGE")

	_, err = env.run("fixtures", "scores", "--today", "20-12-2024")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSample_Download(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))
	target := filepath.Join(t.TempDir(), "positions.csv")

	out, err := env.run("sample", "1", "-d", "market", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "text/csv")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mmsi,timestamp")
}

func TestSample_UnknownResource(t *testing.T) {
	env := newCLIEnv(t, newMockAPI(t))
	target := filepath.Join(t.TempDir(), "missing.csv")

	out, err := env.run("sample", "999", "-d", "market", "-o", target)
	require.Error(t, err)
	assert.Contains(t, out, "sample file does not exist")
	assert.NoFileExists(t, target)
}
