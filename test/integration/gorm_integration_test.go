package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"
	"velocity-ai-be/internal/repository/unitofwork"
	"velocity-ai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())
	assert.NotNil(t, uow.PipelineRunRepository())
	assert.NotNil(t, uow.ActivityRepository())
	assert.NotNil(t, uow.IntegrationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Pipeline Run Round Trip", func(t *testing.T) {
		ctx := context.Background()
		runKey := uuid.New().String()

		run := &entity.PipelineRun{
			Id:        uuid.New(),
			RunKey:    runKey,
			Mode:      "personal",
			UserInput: "integration test input",
			Summary:   "integration test summary",
			Status:    entity.PipelineRunStatusCompleted,
			Sources:   []string{"calendar"},
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.PipelineRunRepository().Create(ctx, run))
		defer func() {
			_ = uow.PipelineRunRepository().Delete(ctx, run.Id)
		}()

		got, err := uow.PipelineRunRepository().FindLatestByRunKey(ctx, runKey)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, run.Summary, got.Summary)
		assert.Equal(t, []string{"calendar"}, got.Sources)

		found, err := uow.PipelineRunRepository().FindOne(ctx, specification.ByRunKey{RunKey: runKey})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, run.Id, found.Id)
	})
}
