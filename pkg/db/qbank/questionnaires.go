package qbank

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func (dbService *QBankDBService) GetQuestionnaires(instanceID string, projectID string) (questionnaires []qbankTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if projectID != "" {
		filter["projectID"] = projectID
	}

	cursor, err := dbService.collectionQuestionnaires(instanceID).Find(ctx, filter)
	if err != nil {
		return questionnaires, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questionnaires)
	return questionnaires, err
}

func (dbService *QBankDBService) GetQuestionnaireByID(instanceID string, questionnaireID string) (questionnaire qbankTypes.Questionnaire, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return questionnaire, err
	}

	filter := bson.M{
		"_id": _id,
	}

	err = dbService.collectionQuestionnaires(instanceID).FindOne(ctx, filter).Decode(&questionnaire)
	return questionnaire, err
}

// CreateQuestionnaireFromBank clones the bank's leaf groups, choice
// collections and questions into a new questionnaire scope. Cross
// references are remapped onto the cloned ids.
func (dbService *QBankDBService) CreateQuestionnaireFromBank(instanceID string, questionnaire qbankTypes.Questionnaire) (qbankTypes.Questionnaire, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	bank, err := dbService.GetQuestionBankByID(instanceID, questionnaire.QuestionBankID.Hex())
	if err != nil {
		return questionnaire, fmt.Errorf("failed to load question bank: %w", err)
	}
	if !bank.IsSeeded {
		return questionnaire, fmt.Errorf("question bank %s is not seeded yet", bank.ID.Hex())
	}

	questionnaire.CreatedAt = time.Now()
	questionnaire.UpdatedAt = time.Now()
	if questionnaire.Version == "" {
		questionnaire.Version = bank.Version
	}

	ret, err := dbService.collectionQuestionnaires(instanceID).InsertOne(ctx, questionnaire)
	if err != nil {
		return questionnaire, err
	}
	questionnaire.ID = ret.InsertedID.(primitive.ObjectID)

	bankScope := bson.M{
		"questionBankID":  bank.ID,
		"questionnaireID": bson.M{"$exists": false},
	}

	var leafGroups []qbankTypes.LeafGroup
	cursor, err := dbService.collectionLeafGroups(instanceID).Find(ctx, bankScope)
	if err != nil {
		return questionnaire, err
	}
	if err := cursor.All(ctx, &leafGroups); err != nil {
		return questionnaire, err
	}

	var collections []qbankTypes.ChoiceCollection
	cursor, err = dbService.collectionChoiceCollections(instanceID).Find(ctx, bankScope)
	if err != nil {
		return questionnaire, err
	}
	if err := cursor.All(ctx, &collections); err != nil {
		return questionnaire, err
	}

	var questions []qbankTypes.Question
	cursor, err = dbService.collectionQuestions(instanceID).Find(ctx, bankScope)
	if err != nil {
		return questionnaire, err
	}
	if err := cursor.All(ctx, &questions); err != nil {
		return questionnaire, err
	}

	leafGroupIDMap := make(map[primitive.ObjectID]primitive.ObjectID, len(leafGroups))
	leafGroupDocs := make([]interface{}, len(leafGroups))
	for i := range leafGroups {
		newID := primitive.NewObjectID()
		leafGroupIDMap[leafGroups[i].ID] = newID
		leafGroups[i].ID = newID
		leafGroups[i].QuestionBankID = primitive.NilObjectID
		leafGroups[i].QuestionnaireID = questionnaire.ID
		leafGroupDocs[i] = leafGroups[i]
	}

	collectionIDMap := make(map[primitive.ObjectID]primitive.ObjectID, len(collections))
	collectionDocs := make([]interface{}, len(collections))
	for i := range collections {
		newID := primitive.NewObjectID()
		collectionIDMap[collections[i].ID] = newID
		collections[i].ID = newID
		collections[i].QuestionBankID = primitive.NilObjectID
		collections[i].QuestionnaireID = questionnaire.ID
		collectionDocs[i] = collections[i]
	}

	questionDocs := make([]interface{}, 0, len(questions))
	for i := range questions {
		newLeafGroupID, ok := leafGroupIDMap[questions[i].LeafGroupID]
		if !ok {
			return questionnaire, fmt.Errorf("question %s references unknown leaf group %s", questions[i].ID.Hex(), questions[i].LeafGroupID.Hex())
		}
		questions[i].ID = primitive.NewObjectID()
		questions[i].QuestionBankID = primitive.NilObjectID
		questions[i].QuestionnaireID = questionnaire.ID
		questions[i].LeafGroupID = newLeafGroupID
		if !questions[i].ChoiceCollectionID.IsZero() {
			newCollectionID, ok := collectionIDMap[questions[i].ChoiceCollectionID]
			if !ok {
				return questionnaire, fmt.Errorf("question %s references unknown choice collection %s", questions[i].ID.Hex(), questions[i].ChoiceCollectionID.Hex())
			}
			questions[i].ChoiceCollectionID = newCollectionID
		}
		questionDocs = append(questionDocs, questions[i])
	}

	if len(leafGroupDocs) > 0 {
		if _, err := dbService.collectionLeafGroups(instanceID).InsertMany(ctx, leafGroupDocs); err != nil {
			return questionnaire, err
		}
	}
	if len(collectionDocs) > 0 {
		if _, err := dbService.collectionChoiceCollections(instanceID).InsertMany(ctx, collectionDocs); err != nil {
			return questionnaire, err
		}
	}
	if len(questionDocs) > 0 {
		if _, err := dbService.collectionQuestions(instanceID).InsertMany(ctx, questionDocs); err != nil {
			return questionnaire, err
		}
	}

	return questionnaire, nil
}

func (dbService *QBankDBService) UpdateQuestionnaire(instanceID string, questionnaire qbankTypes.Questionnaire) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id": questionnaire.ID,
	}
	update := bson.M{
		"$set": bson.M{
			"title":       questionnaire.Title,
			"description": questionnaire.Description,
			"version":     questionnaire.Version,
			"updatedAt":   time.Now(),
		},
	}
	res, err := dbService.collectionQuestionnaires(instanceID).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QBankDBService) DeleteQuestionnaire(instanceID string, questionnaireID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionnaireID)
	if err != nil {
		return err
	}

	scope := bson.M{"questionnaireID": _id}
	if _, err := dbService.collectionQuestions(instanceID).DeleteMany(ctx, scope); err != nil {
		return err
	}
	if _, err := dbService.collectionChoiceCollections(instanceID).DeleteMany(ctx, scope); err != nil {
		return err
	}
	if _, err := dbService.collectionLeafGroups(instanceID).DeleteMany(ctx, scope); err != nil {
		return err
	}

	res, err := dbService.collectionQuestionnaires(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
