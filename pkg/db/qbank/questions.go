package qbank

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func (dbService *QBankDBService) CreateQuestion(instanceID string, question qbankTypes.Question) (qbankTypes.Question, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if err := question.Validate(); err != nil {
		return question, err
	}

	ret, err := dbService.collectionQuestions(instanceID).InsertOne(ctx, question)
	if err != nil {
		return question, err
	}
	question.ID = ret.InsertedID.(primitive.ObjectID)
	return question, nil
}

func (dbService *QBankDBService) GetQuestionsForBank(instanceID string, questionBankID primitive.ObjectID) ([]qbankTypes.Question, error) {
	return dbService.findQuestions(instanceID, bankScopeFilter(questionBankID))
}

func (dbService *QBankDBService) GetQuestionsForQuestionnaire(instanceID string, questionnaireID primitive.ObjectID) ([]qbankTypes.Question, error) {
	return dbService.findQuestions(instanceID, questionnaireScopeFilter(questionnaireID))
}

func (dbService *QBankDBService) findQuestions(instanceID string, filter bson.M) (questions []qbankTypes.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "leafGroupID", Value: 1},
		{Key: "order", Value: 1},
	})
	cursor, err := dbService.collectionQuestions(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return questions, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questions)
	return questions, err
}

func (dbService *QBankDBService) GetQuestionByID(instanceID string, questionID string) (question qbankTypes.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return question, err
	}

	err = dbService.collectionQuestions(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&question)
	return question, err
}

func (dbService *QBankDBService) UpdateQuestion(instanceID string, question qbankTypes.Question) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if err := question.Validate(); err != nil {
		return err
	}

	res, err := dbService.collectionQuestions(instanceID).ReplaceOne(ctx, bson.M{"_id": question.ID}, question)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateQuestionVisibility toggles a questionnaire scoped question in or
// out of the export.
func (dbService *QBankDBService) UpdateQuestionVisibility(instanceID string, questionID string, isHidden bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id":             _id,
		"questionnaireID": bson.M{"$exists": true},
	}
	update := bson.M{
		"$set": bson.M{
			"isHidden": isHidden,
		},
	}
	res, err := dbService.collectionQuestions(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QBankDBService) DeleteQuestion(instanceID string, questionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionQuestions(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
