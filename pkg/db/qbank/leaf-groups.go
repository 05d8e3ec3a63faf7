package qbank

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func bankScopeFilter(questionBankID primitive.ObjectID) bson.M {
	return bson.M{
		"questionBankID":  questionBankID,
		"questionnaireID": bson.M{"$exists": false},
	}
}

func questionnaireScopeFilter(questionnaireID primitive.ObjectID) bson.M {
	return bson.M{
		"questionnaireID": questionnaireID,
	}
}

func (dbService *QBankDBService) GetLeafGroupsForBank(instanceID string, questionBankID primitive.ObjectID) ([]qbankTypes.LeafGroup, error) {
	return dbService.findLeafGroups(instanceID, bankScopeFilter(questionBankID))
}

func (dbService *QBankDBService) GetLeafGroupsForQuestionnaire(instanceID string, questionnaireID primitive.ObjectID) ([]qbankTypes.LeafGroup, error) {
	return dbService.findLeafGroups(instanceID, questionnaireScopeFilter(questionnaireID))
}

func (dbService *QBankDBService) findLeafGroups(instanceID string, filter bson.M) (leafGroups []qbankTypes.LeafGroup, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := dbService.collectionLeafGroups(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return leafGroups, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &leafGroups)
	return leafGroups, err
}

func (dbService *QBankDBService) GetLeafGroupByID(instanceID string, leafGroupID string) (leafGroup qbankTypes.LeafGroup, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(leafGroupID)
	if err != nil {
		return leafGroup, err
	}

	err = dbService.collectionLeafGroups(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&leafGroup)
	return leafGroup, err
}

// UpdateLeafGroupVisibility toggles a questionnaire scoped group in or
// out of the export.
func (dbService *QBankDBService) UpdateLeafGroupVisibility(instanceID string, leafGroupID string, isHidden bool) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(leafGroupID)
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
	res, err := dbService.collectionLeafGroups(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QBankDBService) UpdateLeafGroupRelevant(instanceID string, leafGroupID string, relevant string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(leafGroupID)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"relevant": relevant,
		},
	}
	res, err := dbService.collectionLeafGroups(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
