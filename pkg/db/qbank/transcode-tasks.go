package qbank

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func (dbService *QBankDBService) CreateTranscodeTask(instanceID string, task qbankTypes.TranscodeTask) (qbankTypes.TranscodeTask, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	task.Status = qbankTypes.TRANSCODE_TASK_STATUS_PENDING
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	ret, err := dbService.collectionTranscodeTasks(instanceID).InsertOne(ctx, task)
	if err != nil {
		return task, err
	}
	task.ID = ret.InsertedID.(primitive.ObjectID)
	return task, nil
}

func (dbService *QBankDBService) GetTranscodeTaskByID(instanceID string, taskID string) (task qbankTypes.TranscodeTask, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return task, err
	}

	filter := bson.M{
		"_id": _id,
	}

	err = dbService.collectionTranscodeTasks(instanceID).FindOne(ctx, filter).Decode(&task)
	return task, err
}

// ClaimNextPendingTranscodeTask atomically flips the oldest pending task
// to started and returns it. mongo.ErrNoDocuments means the queue is
// drained.
func (dbService *QBankDBService) ClaimNextPendingTranscodeTask(instanceID string) (task qbankTypes.TranscodeTask, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"status": qbankTypes.TRANSCODE_TASK_STATUS_PENDING,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    qbankTypes.TRANSCODE_TASK_STATUS_STARTED,
			"startedAt": time.Now(),
			"updatedAt": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetReturnDocument(options.After)

	err = dbService.collectionTranscodeTasks(instanceID).FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	return task, err
}

func (dbService *QBankDBService) UpdateTranscodeTaskSuccess(
	instanceID string,
	taskID primitive.ObjectID,
	resultFile string,
	importErrors []string,
	createdCounts qbankTypes.ImportCounts,
) error {
	update := bson.M{
		"$set": bson.M{
			"status":        qbankTypes.TRANSCODE_TASK_STATUS_SUCCESS,
			"resultFile":    resultFile,
			"importErrors":  importErrors,
			"createdCounts": createdCounts,
			"endedAt":       time.Now(),
			"updatedAt":     time.Now(),
		},
	}
	return dbService.updateTranscodeTask(instanceID, taskID, update)
}

func (dbService *QBankDBService) UpdateTranscodeTaskFailure(instanceID string, taskID primitive.ObjectID, errMsg string) error {
	update := bson.M{
		"$set": bson.M{
			"status":    qbankTypes.TRANSCODE_TASK_STATUS_FAILURE,
			"error":     errMsg,
			"endedAt":   time.Now(),
			"updatedAt": time.Now(),
		},
	}
	return dbService.updateTranscodeTask(instanceID, taskID, update)
}

func (dbService *QBankDBService) updateTranscodeTask(instanceID string, taskID primitive.ObjectID, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionTranscodeTasks(instanceID).UpdateOne(ctx, bson.M{"_id": taskID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ResetStaleTranscodeTasks puts tasks back to pending when their runner
// died mid flight. Intended for job startup.
func (dbService *QBankDBService) ResetStaleTranscodeTasks(instanceID string, olderThan time.Duration) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"status":    qbankTypes.TRANSCODE_TASK_STATUS_STARTED,
		"startedAt": bson.M{"$lt": time.Now().Add(-olderThan)},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    qbankTypes.TRANSCODE_TASK_STATUS_PENDING,
			"updatedAt": time.Now(),
		},
	}
	res, err := dbService.collectionTranscodeTasks(instanceID).UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
