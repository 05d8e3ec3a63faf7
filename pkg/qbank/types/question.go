package types

import (
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionType int

// https://xlsform.org/en/#question-types
const (
	QUESTION_TYPE_INTEGER         QuestionType = 1
	QUESTION_TYPE_DECIMAL         QuestionType = 2
	QUESTION_TYPE_TEXT            QuestionType = 3
	QUESTION_TYPE_SELECT_ONE      QuestionType = 4
	QUESTION_TYPE_SELECT_MULTIPLE QuestionType = 5
	QUESTION_TYPE_RANK            QuestionType = 6
	QUESTION_TYPE_RANGE           QuestionType = 7
	QUESTION_TYPE_NOTE            QuestionType = 10
	QUESTION_TYPE_DATE            QuestionType = 14
	QUESTION_TYPE_TIME            QuestionType = 15
	QUESTION_TYPE_DATETIME        QuestionType = 16
	QUESTION_TYPE_IMAGE           QuestionType = 17
	QUESTION_TYPE_AUDIO           QuestionType = 18
	QUESTION_TYPE_VIDEO           QuestionType = 20
	QUESTION_TYPE_FILE            QuestionType = 21
	QUESTION_TYPE_BARCODE         QuestionType = 22
	QUESTION_TYPE_ACKNOWLEDGE     QuestionType = 24
)

// RequiresChoiceCollection reports whether the question type must
// reference a choice collection.
func (t QuestionType) RequiresChoiceCollection() bool {
	switch t {
	case QUESTION_TYPE_SELECT_ONE, QUESTION_TYPE_SELECT_MULTIPLE, QUESTION_TYPE_RANK:
		return true
	}
	return false
}

type PriorityLevel int

const (
	PRIORITY_LEVEL_HIGH   PriorityLevel = 1
	PRIORITY_LEVEL_MEDIUM PriorityLevel = 2
	PRIORITY_LEVEL_LOW    PriorityLevel = 3
)

type EnumeratorSkill int

const (
	ENUMERATOR_SKILL_BASIC        EnumeratorSkill = 1
	ENUMERATOR_SKILL_INTERMEDIATE EnumeratorSkill = 2
	ENUMERATOR_SKILL_ADVANCED     EnumeratorSkill = 3
)

type DataCollectionMethod int

const (
	DATA_COLLECTION_METHOD_DIRECT                  DataCollectionMethod = 1
	DATA_COLLECTION_METHOD_FOCUS_GROUP             DataCollectionMethod = 2
	DATA_COLLECTION_METHOD_ONE_ON_ONE_INTERVIEW    DataCollectionMethod = 3
	DATA_COLLECTION_METHOD_OPEN_ENDED_SURVEY       DataCollectionMethod = 4
	DATA_COLLECTION_METHOD_CLOSED_ENDED_SURVEY     DataCollectionMethod = 5
	DATA_COLLECTION_METHOD_KEY_INFORMANT_INTERVIEW DataCollectionMethod = 6
	DATA_COLLECTION_METHOD_AUTOMATIC               DataCollectionMethod = 7
)

type Question struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionBankID  primitive.ObjectID `bson:"questionBankID,omitempty" json:"questionBankId,omitempty"`
	QuestionnaireID primitive.ObjectID `bson:"questionnaireID,omitempty" json:"questionnaireId,omitempty"`

	LeafGroupID        primitive.ObjectID `bson:"leafGroupID" json:"leafGroupId"`
	ChoiceCollectionID primitive.ObjectID `bson:"choiceCollectionID,omitempty" json:"choiceCollectionId,omitempty"`

	Type  QuestionType `bson:"type" json:"type"`
	Order int          `bson:"order" json:"order"`

	Name  string `bson:"name" json:"name"`
	Label string `bson:"label" json:"label"`

	// XLSForm passthrough fields, forwarded verbatim to the survey sheet.
	Hint              string `bson:"hint,omitempty" json:"hint,omitempty"`
	Default           string `bson:"default,omitempty" json:"default,omitempty"`
	GuidanceHint      string `bson:"guidanceHint,omitempty" json:"guidanceHint,omitempty"`
	Trigger           string `bson:"trigger,omitempty" json:"trigger,omitempty"`
	Readonly          string `bson:"readonly,omitempty" json:"readonly,omitempty"`
	Required          bool   `bson:"required" json:"required"`
	RequiredMessage   string `bson:"requiredMessage,omitempty" json:"requiredMessage,omitempty"`
	Relevant          string `bson:"relevant,omitempty" json:"relevant,omitempty"`
	Constraint        string `bson:"constraint,omitempty" json:"constraint,omitempty"`
	ConstraintMessage string `bson:"constraintMessage,omitempty" json:"constraintMessage,omitempty"`
	Appearance        string `bson:"appearance,omitempty" json:"appearance,omitempty"`
	Calculation       string `bson:"calculation,omitempty" json:"calculation,omitempty"`
	Parameters        string `bson:"parameters,omitempty" json:"parameters,omitempty"`
	ChoiceFilter      string `bson:"choiceFilter,omitempty" json:"choiceFilter,omitempty"`
	Image             string `bson:"image,omitempty" json:"image,omitempty"`
	Video             string `bson:"video,omitempty" json:"video,omitempty"`
	// https://xlsform.org/en/#specify-other
	IsOrOther bool `bson:"isOrOther" json:"isOrOther"`

	IsHidden bool `bson:"isHidden" json:"isHidden"`

	// Qber metadata
	PriorityLevel        PriorityLevel        `bson:"priorityLevel,omitempty" json:"priorityLevel,omitempty"`
	EnumeratorSkill      EnumeratorSkill      `bson:"enumeratorSkill,omitempty" json:"enumeratorSkill,omitempty"`
	DataCollectionMethod DataCollectionMethod `bson:"dataCollectionMethod,omitempty" json:"dataCollectionMethod,omitempty"`
	// In seconds
	RequiredDuration int `bson:"requiredDuration,omitempty" json:"requiredDuration,omitempty"`
}

var (
	ErrQuestionNameRequired       = errors.New("question name is required")
	ErrChoiceCollectionRequired   = errors.New("choice collection is required for select/rank questions")
	ErrLeafGroupRequired          = errors.New("leaf group is required")
	xlsformNamePattern            = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidateXLSFormName checks the form identifier naming constraint:
// alphanumeric or underscore, not starting with a digit.
func ValidateXLSFormName(name string) error {
	if !xlsformNamePattern.MatchString(name) {
		return fmt.Errorf("invalid XLSForm name: %q", name)
	}
	return nil
}

// Validate enforces construction time constraints. Choice typed questions
// must already reference their collection here, not at export time.
func (q Question) Validate() error {
	if q.Name == "" {
		return ErrQuestionNameRequired
	}
	if err := ValidateXLSFormName(q.Name); err != nil {
		return err
	}
	if q.LeafGroupID.IsZero() {
		return ErrLeafGroupRequired
	}
	if q.Type.RequiresChoiceCollection() && q.ChoiceCollectionID.IsZero() {
		return ErrChoiceCollectionRequired
	}
	return nil
}
