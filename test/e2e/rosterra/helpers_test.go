package rosterra_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testImageName = "rosterra-test:latest"

	adminEmail    = "admin@rosterra.com"
	adminPassword = "Admin123!"
)

// TestMain builds the image once for the whole suite and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building rosterra Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up rosterra Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/rosterra/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupContainer starts the server and returns the API base URL
// (including the /api prefix).
func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"5000/tcp"},
		Env: map[string]string{
			"ENV":                    "test",
			"LOG_LEVEL":              "info",
			"LOG_FORMAT":             "json",
			"DEFAULT_ADMIN_EMAIL":    adminEmail,
			"DEFAULT_ADMIN_PASSWORD": adminPassword,
			"PASSWORD_MEMORY_KIB":    "8192",
			"PASSWORD_ITERATIONS":    "1",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("5000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "5000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s/api", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

func loginAdmin(t *testing.T, client *rostersdk.SDKClient) *rostersdk.Session {
	t.Helper()

	session, _, err := client.AuthenticateWithPassword(t.Context(), adminEmail, adminPassword)
	require.NoError(t, err)
	return session
}

func assertStatus(t *testing.T, err error, status int, context string) *rostersdk.APIError {
	t.Helper()

	var apiErr *rostersdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s: expected API error, got %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s: %s", context, apiErr.Message)
	return apiErr
}

func assertUnauthorized(t *testing.T, err error, context string) *rostersdk.APIError {
	t.Helper()
	return assertStatus(t, err, http.StatusUnauthorized, context)
}
