package qbank

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

var ErrChoiceCollectionInUse = errors.New("choice collection is still referenced by questions")

func (dbService *QBankDBService) CreateChoiceCollection(instanceID string, collection qbankTypes.ChoiceCollection) (qbankTypes.ChoiceCollection, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if err := collection.Validate(); err != nil {
		return collection, err
	}

	ret, err := dbService.collectionChoiceCollections(instanceID).InsertOne(ctx, collection)
	if err != nil {
		return collection, err
	}
	collection.ID = ret.InsertedID.(primitive.ObjectID)
	return collection, nil
}

func (dbService *QBankDBService) GetChoiceCollectionsForBank(instanceID string, questionBankID primitive.ObjectID) ([]qbankTypes.ChoiceCollection, error) {
	return dbService.findChoiceCollections(instanceID, bankScopeFilter(questionBankID))
}

func (dbService *QBankDBService) GetChoiceCollectionsForQuestionnaire(instanceID string, questionnaireID primitive.ObjectID) ([]qbankTypes.ChoiceCollection, error) {
	return dbService.findChoiceCollections(instanceID, questionnaireScopeFilter(questionnaireID))
}

func (dbService *QBankDBService) findChoiceCollections(instanceID string, filter bson.M) (collections []qbankTypes.ChoiceCollection, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionChoiceCollections(instanceID).Find(ctx, filter)
	if err != nil {
		return collections, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &collections)
	return collections, err
}

func (dbService *QBankDBService) GetChoiceCollectionByID(instanceID string, collectionID string) (collection qbankTypes.ChoiceCollection, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(collectionID)
	if err != nil {
		return collection, err
	}

	err = dbService.collectionChoiceCollections(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&collection)
	return collection, err
}

func (dbService *QBankDBService) UpdateChoiceCollection(instanceID string, collection qbankTypes.ChoiceCollection) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if err := collection.Validate(); err != nil {
		return err
	}

	res, err := dbService.collectionChoiceCollections(instanceID).ReplaceOne(ctx, bson.M{"_id": collection.ID}, collection)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QBankDBService) DeleteChoiceCollection(instanceID string, collectionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(collectionID)
	if err != nil {
		return err
	}

	count, err := dbService.collectionQuestions(instanceID).CountDocuments(ctx, bson.M{"choiceCollectionID": _id})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrChoiceCollectionInUse
	}

	res, err := dbService.collectionChoiceCollections(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
