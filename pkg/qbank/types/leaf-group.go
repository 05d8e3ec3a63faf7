package types

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/the-deep/qber-backend/pkg/qbank/taxonomy"
)

// LeafGroup is a terminal taxonomy node questions are grouped under.
// It is owned either by a question bank or by a questionnaire (when
// cloned for one), never both sides at once.
type LeafGroup struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionBankID  primitive.ObjectID `bson:"questionBankID,omitempty" json:"questionBankId,omitempty"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaireID,omitempty" json:"questionnaireId,omitempty"`

	Name  string                 `bson:"name" json:"name"`
	Type  taxonomy.LeafGroupType `bson:"type" json:"type"`
	Order int                    `bson:"order" json:"order"`

	Category1 taxonomy.Category1 `bson:"category1" json:"category1"`
	Category2 taxonomy.Category2 `bson:"category2" json:"category2"`
	Category3 taxonomy.Category3 `bson:"category3,omitempty" json:"category3,omitempty"`
	Category4 taxonomy.Category4 `bson:"category4,omitempty" json:"category4,omitempty"`

	// Conditional display expression, forwarded verbatim to the survey
	// sheet. Example: ${has_child} = 'yes'
	Relevant string `bson:"relevant,omitempty" json:"relevant,omitempty"`

	// Only used on questionnaire scoped groups.
	IsHidden bool `bson:"isHidden" json:"isHidden"`
}

func (lg LeafGroup) Tuple() taxonomy.CategoryTuple {
	return taxonomy.CategoryTuple{
		Category1: lg.Category1,
		Category2: lg.Category2,
		Category3: lg.Category3,
		Category4: lg.Category4,
	}
}

// CategoryKeyLabel is one (key, label) step of a leaf group's category
// path, consumed by the export tree builder.
type CategoryKeyLabel struct {
	Key   string
	Label string
}

// Categories returns the ordered category path with trailing absent
// categories trimmed.
func (lg LeafGroup) Categories() []CategoryKeyLabel {
	categories := []CategoryKeyLabel{
		{Key: strconv.Itoa(int(lg.Category1)), Label: lg.Category1.Label()},
		{Key: strconv.Itoa(int(lg.Category2)), Label: lg.Category2.Label()},
	}
	if lg.Category3 != 0 {
		categories = append(categories, CategoryKeyLabel{Key: strconv.Itoa(int(lg.Category3)), Label: lg.Category3.Label()})
	}
	if lg.Category4 != 0 {
		categories = append(categories, CategoryKeyLabel{Key: strconv.Itoa(int(lg.Category4)), Label: lg.Category4.Label()})
	}
	return categories
}

// DisplayLabel is the label used on the group begin row: the deepest
// category of the matrix shape.
func (lg LeafGroup) DisplayLabel() (string, error) {
	switch lg.Type {
	case taxonomy.LEAF_GROUP_TYPE_MATRIX_1D:
		return lg.Category2.Label(), nil
	case taxonomy.LEAF_GROUP_TYPE_MATRIX_2D:
		return lg.Category4.Label(), nil
	default:
		return "", &UnknownLeafGroupTypeError{GroupType: lg.Type}
	}
}

// DefaultLeafGroupName derives the scope-unique name from the category
// identifiers.
func DefaultLeafGroupName(tuple taxonomy.CategoryTuple) string {
	parts := []string{tuple.Category1.String(), tuple.Category2.String()}
	if tuple.Category3 != 0 {
		parts = append(parts, tuple.Category3.String())
	}
	if tuple.Category4 != 0 {
		parts = append(parts, tuple.Category4.String())
	}
	return strings.Join(parts, "-")
}

type UnknownLeafGroupTypeError struct {
	GroupType taxonomy.LeafGroupType
}

func (e *UnknownLeafGroupTypeError) Error() string {
	return "unknown leaf group type: " + e.GroupType.String()
}
