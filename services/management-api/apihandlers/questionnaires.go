package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/the-deep/qber-backend/pkg/apihelpers/middlewares"
	exporter "github.com/the-deep/qber-backend/pkg/exporter/xlsform"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
	"github.com/the-deep/qber-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

var allowedExportFormats = []string{"xlsx", "csv"}

func (h *HttpEndpoints) AddQuestionnaireAPI(rg *gin.RouterGroup) {
	questionnairesGroup := rg.Group("/questionnaires")

	questionnairesGroup.Use(mw.GetAndValidateEditorUserJWT(h.tokenSignKey))
	questionnairesGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		questionnairesGroup.GET("/", h.getAllQuestionnaires)
		questionnairesGroup.POST("/", mw.RequirePayload(), h.createQuestionnaire)
	}

	questionnaireGroup := questionnairesGroup.Group("/:questionnaireID")
	{
		questionnaireGroup.GET("/", h.getQuestionnaire)
		questionnaireGroup.PUT("/", mw.RequirePayload(), h.updateQuestionnaire)
		questionnaireGroup.DELETE("/", h.deleteQuestionnaire)

		questionnaireGroup.GET("/leaf-groups", h.getQuestionnaireLeafGroups)
		questionnaireGroup.PUT("/leaf-groups/:leafGroupID/visibility", mw.RequirePayload(), h.updateLeafGroupVisibility)
		questionnaireGroup.PUT("/leaf-groups/:leafGroupID/relevant", mw.RequirePayload(), h.updateLeafGroupRelevant)

		questionnaireGroup.GET("/questions", h.getQuestionnaireQuestions)
		questionnaireGroup.PUT("/questions/:questionID", mw.RequirePayload(), h.updateQuestionnaireQuestion)
		questionnaireGroup.PUT("/questions/:questionID/visibility", mw.RequirePayload(), h.updateQuestionVisibility)

		questionnaireGroup.GET("/export/preview", h.previewQuestionnaireExport)
		questionnaireGroup.POST("/export", h.queueQuestionnaireExport)
	}
}

func (h *HttpEndpoints) getAllQuestionnaires(c *gin.Context) {
	token := tokenClaims(c)
	projectID := c.DefaultQuery("projectID", "")

	questionnaires, err := h.qbankDBConn.GetQuestionnaires(token.InstanceID, projectID)
	if err != nil {
		slog.Error("failed to fetch questionnaires", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch questionnaires"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaires": questionnaires})
}

func (h *HttpEndpoints) createQuestionnaire(c *gin.Context) {
	token := tokenClaims(c)

	var req qbankTypes.Questionnaire
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.QuestionBankID.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "questionBankId is required"})
		return
	}
	if req.ProjectID != "" && !utils.IsURLSafe(req.ProjectID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "projectId must be URL safe"})
		return
	}
	req.CreatedBy = token.Subject

	if req.Version == "" {
		existing, err := h.qbankDBConn.GetQuestionnaires(token.InstanceID, req.ProjectID)
		if err != nil {
			slog.Error("failed to fetch questionnaires", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create questionnaire"})
			return
		}
		versions := make([]string, len(existing))
		for i, q := range existing {
			versions[i] = q.Version
		}
		req.Version = utils.GenerateVersionID(versions)
	}

	questionnaire, err := h.qbankDBConn.CreateQuestionnaireFromBank(token.InstanceID, req)
	if err != nil {
		slog.Error("failed to create questionnaire", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slog.Info("questionnaire created", slog.String("instanceID", token.InstanceID), slog.String("questionnaireID", questionnaire.ID.Hex()))
	c.JSON(http.StatusCreated, gin.H{"questionnaire": questionnaire})
}

func (h *HttpEndpoints) getQuestionnaire(c *gin.Context) {
	token := tokenClaims(c)

	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": questionnaire})
}

func (h *HttpEndpoints) updateQuestionnaire(c *gin.Context) {
	token := tokenClaims(c)

	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}

	var req qbankTypes.Questionnaire
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	questionnaire.Title = req.Title
	questionnaire.Description = req.Description
	if req.Version != "" {
		questionnaire.Version = req.Version
	}

	if err := h.qbankDBConn.UpdateQuestionnaire(token.InstanceID, questionnaire); err != nil {
		slog.Error("failed to update questionnaire", slog.String("questionnaireID", questionnaire.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update questionnaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionnaire": questionnaire})
}

func (h *HttpEndpoints) deleteQuestionnaire(c *gin.Context) {
	token := tokenClaims(c)

	if err := h.qbankDBConn.DeleteQuestionnaire(token.InstanceID, c.Param("questionnaireID")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
			return
		}
		slog.Error("failed to delete questionnaire", slog.String("questionnaireID", c.Param("questionnaireID")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete questionnaire"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "questionnaire deleted"})
}

func (h *HttpEndpoints) getQuestionnaireLeafGroups(c *gin.Context) {
	token := tokenClaims(c)

	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}

	leafGroups, err := h.qbankDBConn.GetLeafGroupsForQuestionnaire(token.InstanceID, questionnaire.ID)
	if err != nil {
		slog.Error("failed to fetch leaf groups", slog.String("questionnaireID", questionnaire.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaf groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leafGroups": leafGroups})
}

func (h *HttpEndpoints) updateLeafGroupVisibility(c *gin.Context) {
	token := tokenClaims(c)

	var req struct {
		IsHidden bool `json:"isHidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.qbankDBConn.UpdateLeafGroupVisibility(token.InstanceID, c.Param("leafGroupID"), req.IsHidden); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "leaf group not found"})
			return
		}
		slog.Error("failed to update leaf group visibility", slog.String("leafGroupID", c.Param("leafGroupID")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update leaf group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "leaf group updated"})
}

func (h *HttpEndpoints) updateLeafGroupRelevant(c *gin.Context) {
	token := tokenClaims(c)

	var req struct {
		Relevant string `json:"relevant"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.qbankDBConn.UpdateLeafGroupRelevant(token.InstanceID, c.Param("leafGroupID"), req.Relevant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "leaf group not found"})
			return
		}
		slog.Error("failed to update leaf group relevant", slog.String("leafGroupID", c.Param("leafGroupID")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update leaf group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "leaf group updated"})
}

func (h *HttpEndpoints) getQuestionnaireQuestions(c *gin.Context) {
	token := tokenClaims(c)

	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}

	questions, err := h.qbankDBConn.GetQuestionsForQuestionnaire(token.InstanceID, questionnaire.ID)
	if err != nil {
		slog.Error("failed to fetch questions", slog.String("questionnaireID", questionnaire.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *HttpEndpoints) updateQuestionnaireQuestion(c *gin.Context) {
	token := tokenClaims(c)

	question, err := h.qbankDBConn.GetQuestionByID(token.InstanceID, c.Param("questionID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	if question.QuestionnaireID.Hex() != c.Param("questionnaireID") {
		c.JSON(http.StatusNotFound, gin.H{"error": "question does not belong to this questionnaire"})
		return
	}

	var req qbankTypes.Question
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// scope and grouping stay fixed on update
	req.ID = question.ID
	req.QuestionnaireID = question.QuestionnaireID
	req.QuestionBankID = question.QuestionBankID
	req.LeafGroupID = question.LeafGroupID

	if err := h.qbankDBConn.UpdateQuestion(token.InstanceID, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": req})
}

func (h *HttpEndpoints) updateQuestionVisibility(c *gin.Context) {
	token := tokenClaims(c)

	var req struct {
		IsHidden bool `json:"isHidden"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.qbankDBConn.UpdateQuestionVisibility(token.InstanceID, c.Param("questionID"), req.IsHidden); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}
		slog.Error("failed to update question visibility", slog.String("questionID", c.Param("questionID")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question updated"})
}

// previewQuestionnaireExport generates the sheets synchronously and
// returns them as JSON, without touching the task queue.
func (h *HttpEndpoints) previewQuestionnaireExport(c *gin.Context) {
	token := tokenClaims(c)

	data, err := h.loadQuestionnaireExportData(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	questionnaireExporter, err := exporter.NewQuestionnaireExporter(data)
	if err != nil {
		slog.Error("failed to generate export preview", slog.String("questionnaireID", c.Param("questionnaireID")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	survey, choices, settings := questionnaireExporter.Sheets()
	c.JSON(http.StatusOK, gin.H{
		"survey":   survey,
		"choices":  choices,
		"settings": settings,
	})
}

func (h *HttpEndpoints) queueQuestionnaireExport(c *gin.Context) {
	token := tokenClaims(c)

	format := c.DefaultQuery("format", "xlsx")
	if !utils.ContainsString(allowedExportFormats, format) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of xlsx, csv"})
		return
	}

	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(token.InstanceID, c.Param("questionnaireID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}

	task, err := h.qbankDBConn.CreateTranscodeTask(token.InstanceID, qbankTypes.TranscodeTask{
		TaskType:        qbankTypes.TRANSCODE_TASK_TYPE_EXPORT,
		QuestionnaireID: questionnaire.ID,
		Format:          format,
		CreatedBy:       token.Subject,
	})
	if err != nil {
		slog.Error("failed to create export task", slog.String("questionnaireID", questionnaire.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create export task"})
		return
	}

	slog.Info("export task queued", slog.String("instanceID", token.InstanceID), slog.String("taskID", task.ID.Hex()), slog.String("format", format))
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *HttpEndpoints) loadQuestionnaireExportData(instanceID string, questionnaireID string) (exporter.QuestionnaireData, error) {
	questionnaire, err := h.qbankDBConn.GetQuestionnaireByID(instanceID, questionnaireID)
	if err != nil {
		return exporter.QuestionnaireData{}, errors.New("questionnaire not found")
	}

	leafGroups, err := h.qbankDBConn.GetLeafGroupsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return exporter.QuestionnaireData{}, err
	}
	questions, err := h.qbankDBConn.GetQuestionsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return exporter.QuestionnaireData{}, err
	}
	collections, err := h.qbankDBConn.GetChoiceCollectionsForQuestionnaire(instanceID, questionnaire.ID)
	if err != nil {
		return exporter.QuestionnaireData{}, err
	}

	return exporter.BuildQuestionnaireData(questionnaire, leafGroups, questions, collections), nil
}
