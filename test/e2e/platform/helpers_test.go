//go:build e2e

package platform_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yukti/platform/pkg/platformsdk"
)

/*
 * Container setup and helpers shared by the platform end-to-end tests. The
 * service runs in development mode so emailed codes land in its JSON logs,
 * which is where the tests read them from.
 */

const (
	testImageName = "yukti-platform-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "root@yukti.io"
	adminName      = "Platform Admin"
	dashboardBase  = "https://app.yukti.test/dashboard"
)

// TestMain builds the image once for the whole package.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Platform Service Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Platform Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/platform/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// platformEnv is one running service container.
type platformEnv struct {
	BaseURL   string
	Client    *platformsdk.SDKClient
	container testcontainers.Container
}

// relaxedLimits keeps the strict OTP buckets from tripping in tests that
// log in repeatedly from the same address.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
}

func setupPlatform(t *testing.T) *platformEnv {
	return setupPlatformWithEnv(t, relaxedLimits)
}

func setupPlatformWithEnv(t *testing.T, extra map[string]string) *platformEnv {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":                "development",
		"LOG_LEVEL":          "info",
		"LOG_FORMAT":         "json",
		"BOOTSTRAP_TOKEN":    bootstrapToken,
		"DASHBOARD_BASE_URL": dashboardBase,
		"FRONTEND_URL":       "https://app.yukti.test",
		"JWT_SECRET":         "e2e-access-secret",
		"JWT_REFRESH_SECRET": "e2e-refresh-secret",
	}
	for k, v := range extra {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return &platformEnv{
		BaseURL:   baseURL,
		Client:    platformsdk.NewSDKClient(baseURL),
		container: container,
	}
}

// emailLog is the subset of a LogNotifier line the tests care about.
type emailLog struct {
	Msg  string `json:"msg"`
	Kind string `json:"kind"`
	To   string `json:"to"`
	Code string `json:"code"`
	URL  string `json:"url"`
}

// lastEmail returns the most recent email of kind sent to addr, polling the
// container logs briefly since log delivery is asynchronous.
func (e *platformEnv) lastEmail(t *testing.T, kind, addr string) emailLog {
	t.Helper()

	var found emailLog
	require.Eventually(t, func() bool {
		rc, err := e.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		ok := false
		sc := bufio.NewScanner(rc)
		for sc.Scan() {
			var line emailLog
			if json.Unmarshal(sc.Bytes(), &line) != nil {
				continue
			}
			if line.Msg == "email" && line.Kind == kind && line.To == addr {
				found, ok = line, true
			}
		}
		return ok
	}, 10*time.Second, 200*time.Millisecond, "no %s email for %s in container logs", kind, addr)

	return found
}

func (e *platformEnv) otpCode(t *testing.T, addr string) string {
	t.Helper()
	m := e.lastEmail(t, "otp", addr)
	require.Len(t, m.Code, 6)
	return m.Code
}

// invitation returns the token carried in the invitation link and its code.
func (e *platformEnv) invitation(t *testing.T, addr string) (token, code string) {
	t.Helper()
	m := e.lastEmail(t, "invitation", addr)
	u, err := url.Parse(m.URL)
	require.NoError(t, err)
	token = u.Query().Get("token")
	require.NotEmpty(t, token)
	return token, m.Code
}

// bootstrapAdmin creates the platform admin and returns its session.
func (e *platformEnv) bootstrapAdmin(t *testing.T) *platformsdk.Session {
	t.Helper()
	ctx := t.Context()

	resp, err := e.Client.Bootstrap(ctx, bootstrapToken, platformsdk.BootstrapRequest{
		CompanyName:  "Yukti",
		CompanyAlias: "yukti",
		AdminName:    adminName,
		AdminEmail:   adminEmail,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.UserID)

	return e.login(t, adminEmail)
}

// login runs the two-step OTP login for addr.
func (e *platformEnv) login(t *testing.T, addr string) *platformsdk.Session {
	t.Helper()
	ctx := t.Context()

	sent, err := e.Client.RequestOTP(ctx, addr)
	require.NoError(t, err, "OTP request for %s should succeed", addr)
	require.True(t, sent.OTPSent)

	session, err := e.Client.AuthenticateWithOTP(ctx, addr, e.otpCode(t, addr))
	require.NoError(t, err, "OTP login for %s should succeed", addr)
	return session
}

// signupCompany registers a company and returns the signup response.
func (e *platformEnv) signupCompany(t *testing.T, name, alias, owner string) *platformsdk.SignupResponse {
	t.Helper()
	resp, err := e.Client.Signup(t.Context(), platformsdk.SignupRequest{
		Name:         "Owner of " + name,
		Email:        owner,
		CompanyName:  name,
		CompanyAlias: alias,
	})
	require.NoError(t, err, "Signup should succeed")
	require.True(t, resp.RequiresApproval)
	return resp
}

func requireStatus(t *testing.T, err error, status int, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	require.True(t, platformsdk.IsStatus(err, status), "expected HTTP %d, got: %v", status, err)
}

func requireUnauthorized(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	requireStatus(t, err, http.StatusUnauthorized, msgAndArgs...)
}
