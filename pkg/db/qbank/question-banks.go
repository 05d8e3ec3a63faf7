package qbank

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// ErrAlreadySeeded is returned when taxonomy seeding is attempted on a
// bank that already holds its leaf groups.
var ErrAlreadySeeded = errors.New("question bank is already seeded")

func (dbService *QBankDBService) CreateQuestionBank(instanceID string, questionBank qbankTypes.QuestionBank) (qbankTypes.QuestionBank, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	questionBank.CreatedAt = time.Now()
	questionBank.UpdatedAt = time.Now()
	questionBank.IsSeeded = false

	ret, err := dbService.collectionQuestionBanks(instanceID).InsertOne(ctx, questionBank)
	if err != nil {
		return questionBank, err
	}
	questionBank.ID = ret.InsertedID.(primitive.ObjectID)
	return questionBank, nil
}

func (dbService *QBankDBService) GetQuestionBanks(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (questionBanks []qbankTypes.QuestionBank, totalCount int64, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	if len(sort) == 0 {
		sort = bson.M{"createdAt": -1}
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	collection := dbService.collectionQuestionBanks(instanceID)

	totalCount, err = collection.CountDocuments(ctx, filter)
	if err != nil {
		return questionBanks, totalCount, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return questionBanks, totalCount, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questionBanks)
	return questionBanks, totalCount, err
}

func (dbService *QBankDBService) GetQuestionBankByID(instanceID string, questionBankID string) (questionBank qbankTypes.QuestionBank, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionBankID)
	if err != nil {
		return questionBank, err
	}

	filter := bson.M{
		"_id": _id,
	}

	err = dbService.collectionQuestionBanks(instanceID).FindOne(ctx, filter).Decode(&questionBank)
	return questionBank, err
}

// SeedLeafGroups stores the pre-generated taxonomy cross product for a
// bank and flips its seeded flag. A second call for the same bank fails
// with ErrAlreadySeeded and inserts nothing.
func (dbService *QBankDBService) SeedLeafGroups(instanceID string, questionBankID primitive.ObjectID, leafGroups []qbankTypes.LeafGroup) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id":      questionBankID,
		"isSeeded": false,
	}
	update := bson.M{
		"$set": bson.M{
			"isSeeded":  true,
			"updatedAt": time.Now(),
		},
	}

	res, err := dbService.collectionQuestionBanks(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadySeeded
	}

	docs := make([]interface{}, len(leafGroups))
	for i, lg := range leafGroups {
		docs[i] = lg
	}
	_, err = dbService.collectionLeafGroups(instanceID).InsertMany(ctx, docs)
	return err
}

func (dbService *QBankDBService) UpdateQuestionBank(instanceID string, questionBank qbankTypes.QuestionBank) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id": questionBank.ID,
	}
	update := bson.M{
		"$set": bson.M{
			"title":       questionBank.Title,
			"description": questionBank.Description,
			"version":     questionBank.Version,
			"updatedAt":   time.Now(),
		},
	}
	res, err := dbService.collectionQuestionBanks(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QBankDBService) DeleteQuestionBank(instanceID string, questionBankID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionBankID)
	if err != nil {
		return err
	}

	count, err := dbService.collectionQuestionnaires(instanceID).CountDocuments(ctx, bson.M{"questionBankID": _id})
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("question bank has %d questionnaires, delete them first", count)
	}

	bankFilter := bson.M{"questionBankID": _id, "questionnaireID": bson.M{"$exists": false}}
	if _, err := dbService.collectionQuestions(instanceID).DeleteMany(ctx, bankFilter); err != nil {
		return err
	}
	if _, err := dbService.collectionChoiceCollections(instanceID).DeleteMany(ctx, bankFilter); err != nil {
		return err
	}
	if _, err := dbService.collectionLeafGroups(instanceID).DeleteMany(ctx, bankFilter); err != nil {
		return err
	}

	res, err := dbService.collectionQuestionBanks(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
