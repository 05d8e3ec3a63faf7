package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func main() {
	slog.Info("Starting questionnaire transcoder job")
	start := time.Now()

	for _, instanceID := range conf.InstanceIDs {
		resetCount, err := qbankDBService.ResetStaleTranscodeTasks(instanceID, conf.StaleTaskTimeout)
		if err != nil {
			slog.Error("Error resetting stale tasks", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		} else if resetCount > 0 {
			slog.Warn("Reset stale transcode tasks", slog.String("instanceID", instanceID), slog.Int("count", int(resetCount)))
		}

		drainTaskQueue(instanceID)
	}

	if err := qbankDBService.DBClient.Disconnect(context.Background()); err != nil {
		slog.Error("Error closing DB connection", slog.String("error", err.Error()))
	}
	slog.Info("Questionnaire transcoder job completed", slog.Duration("duration", time.Since(start)))
}

func drainTaskQueue(instanceID string) {
	for {
		task, err := qbankDBService.ClaimNextPendingTranscodeTask(instanceID)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				slog.Error("Error claiming transcode task", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
			}
			return
		}

		slog.Info("Processing transcode task", slog.String("instanceID", instanceID), slog.String("taskID", task.ID.Hex()), slog.String("taskType", task.TaskType))

		if err := runTask(instanceID, task); err != nil {
			slog.Error("Transcode task failed", slog.String("taskID", task.ID.Hex()), slog.String("error", err.Error()))
			if dbErr := qbankDBService.UpdateTranscodeTaskFailure(instanceID, task.ID, err.Error()); dbErr != nil {
				slog.Error("Error saving task failure", slog.String("taskID", task.ID.Hex()), slog.String("error", dbErr.Error()))
			}
		}
	}
}

func runTask(instanceID string, task qbankTypes.TranscodeTask) error {
	switch task.TaskType {
	case qbankTypes.TRANSCODE_TASK_TYPE_EXPORT:
		return runExportTask(instanceID, task)
	case qbankTypes.TRANSCODE_TASK_TYPE_IMPORT:
		return runImportTask(instanceID, task)
	default:
		return fmt.Errorf("unknown task type: %s", task.TaskType)
	}
}
