package types

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChoiceCollection is a named list of selectable options referenced by
// name (not id) in the export format.
type ChoiceCollection struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionBankID  primitive.ObjectID `bson:"questionBankID,omitempty" json:"questionBankId,omitempty"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaireID,omitempty" json:"questionnaireId,omitempty"`

	Name    string   `bson:"name" json:"name"`
	Label   string   `bson:"label" json:"label"`
	Choices []Choice `bson:"choices" json:"choices"`
}

type Choice struct {
	Name  string `bson:"name" json:"name"`
	Label string `bson:"label" json:"label"`
}

// Validate checks choice name uniqueness within the collection.
func (cc ChoiceCollection) Validate() error {
	if cc.Name == "" {
		return fmt.Errorf("choice collection name is required")
	}
	seen := map[string]struct{}{}
	for _, choice := range cc.Choices {
		if _, ok := seen[choice.Name]; ok {
			return fmt.Errorf("duplicate choice name %q in collection %q", choice.Name, cc.Name)
		}
		seen[choice.Name] = struct{}{}
	}
	return nil
}
