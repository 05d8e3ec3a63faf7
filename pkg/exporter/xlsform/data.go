package xlsform

import (
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// BuildQuestionnaireData groups the flat db records into the export
// input shape. questions must already be ordered within their groups.
func BuildQuestionnaireData(
	questionnaire qbankTypes.Questionnaire,
	leafGroups []qbankTypes.LeafGroup,
	questions []qbankTypes.Question,
	collections []qbankTypes.ChoiceCollection,
) QuestionnaireData {
	questionsByLeafGroup := make(map[string][]qbankTypes.Question)
	for _, question := range questions {
		groupID := question.LeafGroupID.Hex()
		questionsByLeafGroup[groupID] = append(questionsByLeafGroup[groupID], question)
	}

	collectionsByID := make(map[string]qbankTypes.ChoiceCollection, len(collections))
	for _, collection := range collections {
		collectionsByID[collection.ID.Hex()] = collection
	}

	return QuestionnaireData{
		Questionnaire:        questionnaire,
		LeafGroups:           leafGroups,
		QuestionsByLeafGroup: questionsByLeafGroup,
		ChoiceCollections:    collectionsByID,
	}
}
