package qbank

import (
	"context"
	"log/slog"
	"time"

	"github.com/the-deep/qber-backend/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_QUESTION_BANKS     = "question-banks"
	COLLECTION_NAME_QUESTIONNAIRES     = "questionnaires"
	COLLECTION_NAME_LEAF_GROUPS        = "leaf-groups"
	COLLECTION_NAME_QUESTIONS          = "questions"
	COLLECTION_NAME_CHOICE_COLLECTIONS = "choice-collections"
	COLLECTION_NAME_TRANSCODE_TASKS    = "transcodeTasks"
)

const (
	REMOVE_TRANSCODE_TASK_AFTER = 60 * 60 * 24 * 7 // 7 days
)

type QBankDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewQBankDBService(configs db.DBConfig) (*QBankDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	qbankDBSc := &QBankDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := qbankDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for question bank DB", slog.String("error", err.Error()))
		}
	}

	return qbankDBSc, nil
}

func (dbService *QBankDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_qbankDB"
}

func (dbService *QBankDBService) collectionQuestionBanks(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTION_BANKS)
}

func (dbService *QBankDBService) collectionQuestionnaires(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTIONNAIRES)
}

func (dbService *QBankDBService) collectionLeafGroups(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_LEAF_GROUPS)
}

func (dbService *QBankDBService) collectionQuestions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTIONS)
}

func (dbService *QBankDBService) collectionChoiceCollections(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_CHOICE_COLLECTIONS)
}

func (dbService *QBankDBService) collectionTranscodeTasks(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_TRANSCODE_TASKS)
}

func (dbService *QBankDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *QBankDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for question bank DB")
	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		// transcode tasks: auto delete on creation date
		_, err := dbService.collectionTranscodeTasks(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(REMOVE_TRANSCODE_TASK_AFTER),
			},
		)
		if err != nil {
			slog.Error("Error creating index for createdAt in transcodeTasks", slog.String("error", err.Error()))
		}

		_, err = dbService.collectionTranscodeTasks(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{
					{Key: "status", Value: 1},
					{Key: "createdAt", Value: 1},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating index for status in transcodeTasks", slog.String("error", err.Error()))
		}

		// leaf groups: one group per category combination within a scope
		_, err = dbService.collectionLeafGroups(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{
					{Key: "questionBankID", Value: 1},
					{Key: "questionnaireID", Value: 1},
					{Key: "category1", Value: 1},
					{Key: "category2", Value: 1},
					{Key: "category3", Value: 1},
					{Key: "category4", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		)
		if err != nil {
			slog.Error("Error creating index for leaf-groups", slog.String("error", err.Error()))
		}

		_, err = dbService.collectionQuestions(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{
					{Key: "leafGroupID", Value: 1},
					{Key: "order", Value: 1},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating index for questions", slog.String("error", err.Error()))
		}

		_, err = dbService.collectionChoiceCollections(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{
					{Key: "questionBankID", Value: 1},
					{Key: "questionnaireID", Value: 1},
					{Key: "name", Value: 1},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating index for choice-collections", slog.String("error", err.Error()))
		}
	}
	return nil
}
