package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TRANSCODE_TASK_TYPE_EXPORT = "export"
	TRANSCODE_TASK_TYPE_IMPORT = "import"

	TRANSCODE_TASK_STATUS_PENDING = "pending"
	TRANSCODE_TASK_STATUS_STARTED = "started"
	TRANSCODE_TASK_STATUS_SUCCESS = "success"
	TRANSCODE_TASK_STATUS_FAILURE = "failure"
)

// TranscodeTask is one queued export or import run. Status transitions
// and timestamps are owned by the task runner, not by the transcoder
// core.
type TranscodeTask struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TaskType string             `bson:"taskType" json:"taskType"`
	Status   string             `bson:"status" json:"status"`

	// export tasks target a questionnaire, import tasks a question bank
	QuestionnaireID primitive.ObjectID `bson:"questionnaireID,omitempty" json:"questionnaireId,omitempty"`
	QuestionBankID  primitive.ObjectID `bson:"questionBankID,omitempty" json:"questionBankId,omitempty"`

	SourceFile string `bson:"sourceFile,omitempty" json:"sourceFile,omitempty"`
	ResultFile string `bson:"resultFile,omitempty" json:"resultFile,omitempty"`
	// export tasks only: xlsx or csv
	Format string `bson:"format,omitempty" json:"format,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
	StartedAt time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	EndedAt   time.Time `bson:"endedAt,omitempty" json:"endedAt,omitempty"`

	// Fatal error for failed runs.
	Error string `bson:"error,omitempty" json:"error,omitempty"`
	// Collected soft errors of an import run, ordered as encountered.
	ImportErrors []string `bson:"importErrors,omitempty" json:"importErrors,omitempty"`

	CreatedCounts ImportCounts `bson:"createdCounts,omitempty" json:"createdCounts,omitempty"`
}

type ImportCounts struct {
	LeafGroups        int `bson:"leafGroups" json:"leafGroups"`
	ChoiceCollections int `bson:"choiceCollections" json:"choiceCollections"`
	Questions         int `bson:"questions" json:"questions"`
}
