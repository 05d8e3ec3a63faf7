package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionBank struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Version     string             `bson:"version,omitempty" json:"version,omitempty"`
	ImportFile  string             `bson:"importFile,omitempty" json:"importFile,omitempty"`
	IsSeeded    bool               `bson:"isSeeded" json:"isSeeded"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy   string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Questionnaire struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuestionBankID primitive.ObjectID `bson:"questionBankID,omitempty" json:"questionBankId,omitempty"`
	ProjectID      string             `bson:"projectID,omitempty" json:"projectId,omitempty"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Version        string             `bson:"version,omitempty" json:"version,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy      string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
