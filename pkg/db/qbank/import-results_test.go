package qbank

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func TestSaveImportResult(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	bankID := primitive.NewObjectID()
	leafGroupID := primitive.NewObjectID()
	collections := []qbankTypes.ChoiceCollection{
		{
			ID:             primitive.NewObjectID(),
			QuestionBankID: bankID,
			Name:           "yes_no",
			Choices: []qbankTypes.Choice{
				{Name: "yes", Label: "Yes"},
				{Name: "no", Label: "No"},
			},
		},
	}
	questions := []qbankTypes.Question{
		{
			ID:             primitive.NewObjectID(),
			QuestionBankID: bankID,
			LeafGroupID:    leafGroupID,
			Type:           qbankTypes.QUESTION_TYPE_INTEGER,
			Name:           "q1",
			Label:          "How many?",
		},
	}

	newService := func(mt *mtest.T) *QBankDBService {
		return &QBankDBService{
			DBClient:    mt.Client,
			timeout:     5,
			InstanceIDs: []string{"testinstance"},
		}
	}

	mt.Run("all writes committed together", func(mt *mtest.T) {
		dbService := newService(mt)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(),
		)

		counts, err := dbService.SaveImportResult("testinstance", bankID, "import.xlsx", collections, questions)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if counts.ChoiceCollections != 1 {
			mt.Errorf("unexpected choice collection count: %d", counts.ChoiceCollections)
		}
		if counts.Questions != 1 {
			mt.Errorf("unexpected question count: %d", counts.Questions)
		}
	})

	mt.Run("failed question insert aborts the whole run", func(mt *mtest.T) {
		dbService := newService(mt)

		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "duplicate key",
			}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		counts, err := dbService.SaveImportResult("testinstance", bankID, "import.xlsx", collections, questions)
		if err == nil {
			mt.Fatal("expected error, got nil")
		}
		if counts.ChoiceCollections != 0 {
			mt.Errorf("choice collection count reported despite aborted run: %d", counts.ChoiceCollections)
		}
		if counts.Questions != 0 {
			mt.Errorf("question count reported despite aborted run: %d", counts.Questions)
		}
	})
}
