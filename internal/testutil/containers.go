package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/foodtrack/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultPostgresImage = "postgres:17-alpine"
	postgresUser         = "foodtrack"
	postgresPassword     = "foodtrack"
	postgresDatabase     = "foodtrack"
)

// PostgresContainer is a disposable PostgreSQL server
type PostgresContainer struct {
	Container testcontainers.Container
	Config    *config.Config
}

// PostgresImage returns the image to run, from POSTGRES_IMAGE or DB_IMAGE.
// An empty result means no image is configured.
func PostgresImage() string {
	if image := os.Getenv("POSTGRES_IMAGE"); image != "" {
		return image
	}
	return os.Getenv("DB_IMAGE")
}

// StartPostgres runs a PostgreSQL container and returns a config pointing at it.
// t may be nil when called outside a test.
func StartPostgres(ctx context.Context, t *testing.T, image string) (*PostgresContainer, error) {
	if image == "" {
		image = defaultPostgresImage
	}

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       postgresDatabase,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(tcpPort),
			).WithDeadline(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres: %w", err)
	}

	pc := &PostgresContainer{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		pc.Terminate(t)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		pc.Terminate(t)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	pc.Config = &config.Config{
		Port:              "3000",
		DBType:            "postgres",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        postgresDatabase,
		DBUser:            postgresUser,
		DBPassword:        postgresPassword,
		DBConnectionLimit: 5,
		DBLogLevel:        "warn",
		BcryptCost:        4,
		EmailUnique:       true,
		LogLevel:          "info",
	}

	logMessage(t, "DB_HOST=%s DB_PORT=%s DB_DATABASE=%s", host, port.Port(), postgresDatabase)
	return pc, nil
}

// Terminate stops and removes the container
func (pc *PostgresContainer) Terminate(t *testing.T) {
	if pc == nil || pc.Container == nil {
		return
	}
	if err := pc.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate PostgreSQL: %v", err)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
