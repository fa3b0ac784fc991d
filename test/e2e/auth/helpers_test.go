package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/passkey/passkeytest"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, sign-up and login through the SDK, and
 * assertions on the error envelope.
 */

const (
	testImageName = "dynaform-auth-test:latest"
	redisImage    = "redis:7-alpine"

	jwtSecret  = "e2e-secret-0123456789abcdef0123456789"
	rpOrigin   = "http://localhost:4200"
	adminEmail = "admin@example.com"
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // The image may already be gone
}

type containerOption func(*testcontainers.ContainerRequest)

// withEnv overrides or adds service environment variables.
func withEnv(key, value string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Env[key] = value
	}
}

// withoutEnv drops a variable so the service falls back to its default.
func withoutEnv(key string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		delete(req.Env, key)
	}
}

// withNetwork attaches the container to a shared docker network.
func withNetwork(name string, aliases ...string) containerOption {
	return func(req *testcontainers.ContainerRequest) {
		req.Networks = append(req.Networks, name)
		if len(aliases) > 0 {
			if req.NetworkAliases == nil {
				req.NetworkAliases = map[string][]string{}
			}
			req.NetworkAliases[name] = aliases
		}
	}
}

// setupAuthContainer starts the auth service and returns its base URL.
// Rate limits are raised so tests can make rapid requests. Use withoutEnv
// to restore a default profile.
func setupAuthContainer(t *testing.T, opts ...containerOption) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"AUTH_ENV":          "test",
			"AUTH_LOG_LEVEL":    "info",
			"AUTH_ISSUER":       "dynaform-auth-e2e",
			"AUTH_JWT_SECRET":   jwtSecret,
			"AUTH_RP_ID":        "localhost",
			"AUTH_RP_ORIGINS":   rpOrigin,
			"AUTH_ADMIN_EMAILS": adminEmail,

			"RATE_LIMIT_STRICT_RPS":   "1000",
			"RATE_LIMIT_MODERATE_RPS": "1000",
			"RATE_LIMIT_LENIENT_RPS":  "1000",
			"RATE_LIMIT_PUBLIC_RPS":   "1000",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}
	for _, opt := range opts {
		opt(&req)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
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

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// redisInstance locates a Redis container from inside the docker network
// and from the test process.
type redisInstance struct {
	Network     string
	InternalURL string
	ExternalURL string
}

// setupRedis starts Redis on a fresh network.
func setupRedis(t *testing.T) redisInstance {
	t.Helper()
	ctx := context.Background()

	nw, err := network.New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = nw.Remove(context.Background()) })

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          redisImage,
			ExposedPorts:   []string{"6379/tcp"},
			Networks:       []string{nw.Name},
			NetworkAliases: map[string][]string{nw.Name: {"redis"}},
			WaitingFor:     wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return redisInstance{
		Network:     nw.Name,
		InternalURL: "redis://redis:6379/0",
		ExternalURL: fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
	}
}

// signUp creates an account and registers one passkey for it.
func signUp(t *testing.T, client *authsdk.SDKClient, username, email string) (string, *passkeytest.Authenticator) {
	t.Helper()
	ctx := t.Context()

	acct, err := client.Register(ctx, authsdk.RegisterRequest{
		FullName: "E2E " + username,
		Email:    email,
		Username: username,
	})
	require.NoError(t, err, "Register should succeed")
	require.NotEmpty(t, acct.UserID)

	authenticator, err := passkeytest.New(rpOrigin)
	require.NoError(t, err)

	options, err := client.BeginPasskeyRegistration(ctx, acct.UserID)
	require.NoError(t, err)

	credential, err := authenticator.Register(options)
	require.NoError(t, err)

	resp, err := client.FinishPasskeyRegistration(ctx, acct.UserID, credential, "E2E key")
	require.NoError(t, err, "Passkey registration should succeed")
	require.True(t, resp.Success)

	return acct.UserID, authenticator
}

// logIn runs a discoverable passkey login.
func logIn(t *testing.T, client *authsdk.SDKClient, authenticator *passkeytest.Authenticator) *authsdk.Session {
	t.Helper()
	ctx := t.Context()

	options, err := client.BeginPasskeyAuthentication(ctx)
	require.NoError(t, err)

	assertion, err := authenticator.Assert(options)
	require.NoError(t, err)

	session, err := client.AuthenticateWithPasskey(ctx, assertion)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, session.AccessToken())
	require.NotEmpty(t, session.RefreshToken())
	return session
}

// assertKind checks that err is an API error of the given kind.
func assertKind(t *testing.T, err error, kind string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, authsdk.IsKind(err, kind), "expected %s, got: %v", kind, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
