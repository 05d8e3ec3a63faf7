package qbank

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// SaveImportResult persists everything one import run produced for a
// bank: new choice collections and questions, plus the source file
// reference on the bank itself. The leaf groups were seeded before the
// run, only their question counts change here.
// All writes happen in a single transaction, either the whole run is
// committed or none of it is.
func (dbService *QBankDBService) SaveImportResult(
	instanceID string,
	questionBankID primitive.ObjectID,
	sourceFile string,
	collections []qbankTypes.ChoiceCollection,
	questions []qbankTypes.Question,
) (qbankTypes.ImportCounts, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	counts := qbankTypes.ImportCounts{}

	session, err := dbService.DBClient.StartSession()
	if err != nil {
		return counts, err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if len(collections) > 0 {
			docs := make([]interface{}, len(collections))
			for i, collection := range collections {
				docs[i] = collection
			}
			if _, err := dbService.collectionChoiceCollections(instanceID).InsertMany(sessCtx, docs); err != nil {
				return nil, err
			}
		}

		if len(questions) > 0 {
			docs := make([]interface{}, len(questions))
			for i, question := range questions {
				docs[i] = question
			}
			if _, err := dbService.collectionQuestions(instanceID).InsertMany(sessCtx, docs); err != nil {
				return nil, err
			}
		}

		update := bson.M{
			"$set": bson.M{
				"importFile": sourceFile,
				"updatedAt":  time.Now(),
			},
		}
		if _, err := dbService.collectionQuestionBanks(instanceID).UpdateOne(sessCtx, bson.M{"_id": questionBankID}, update); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return counts, err
	}

	counts.ChoiceCollections = len(collections)
	counts.Questions = len(questions)
	return counts, nil
}
