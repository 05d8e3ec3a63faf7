package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/the-deep/qber-backend/pkg/apihelpers"
	mw "github.com/the-deep/qber-backend/pkg/apihelpers/middlewares"
	qbankDB "github.com/the-deep/qber-backend/pkg/db/qbank"
	importer "github.com/the-deep/qber-backend/pkg/importer/xlsform"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
	"github.com/the-deep/qber-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func (h *HttpEndpoints) AddQuestionBankAPI(rg *gin.RouterGroup) {
	banksGroup := rg.Group("/question-banks")

	banksGroup.Use(mw.GetAndValidateEditorUserJWT(h.tokenSignKey))
	banksGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		banksGroup.GET("/", h.getAllQuestionBanks)
		banksGroup.POST("/", mw.RequirePayload(), mw.IsAdminUser(), h.createQuestionBank)
	}

	bankGroup := banksGroup.Group("/:bankID")
	{
		bankGroup.GET("/", h.getQuestionBank)
		bankGroup.PUT("/", mw.RequirePayload(), h.updateQuestionBank)
		bankGroup.DELETE("/", mw.IsAdminUser(), h.deleteQuestionBank)
		bankGroup.POST("/seed", mw.IsAdminUser(), h.seedQuestionBank)

		bankGroup.GET("/leaf-groups", h.getQuestionBankLeafGroups)
		bankGroup.GET("/questions", h.getQuestionBankQuestions)
		bankGroup.POST("/questions", mw.RequirePayload(), h.createQuestionBankQuestion)
		bankGroup.DELETE("/questions/:questionID", h.deleteQuestionBankQuestion)
		bankGroup.GET("/choice-collections", h.getQuestionBankChoiceCollections)
		bankGroup.POST("/choice-collections", mw.RequirePayload(), h.createQuestionBankChoiceCollection)
		bankGroup.GET("/choice-collections/:collectionID", h.getQuestionBankChoiceCollection)
		bankGroup.PUT("/choice-collections/:collectionID", mw.RequirePayload(), h.updateQuestionBankChoiceCollection)
		bankGroup.DELETE("/choice-collections/:collectionID", h.deleteQuestionBankChoiceCollection)

		bankGroup.POST("/import", h.uploadQuestionBankImport)
	}
}

func (h *HttpEndpoints) getAllQuestionBanks(c *gin.Context) {
	token := tokenClaims(c)

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questionBanks, totalCount, err := h.qbankDBConn.GetQuestionBanks(token.InstanceID, query.Filter, query.Sort, query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to fetch question banks", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch question banks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questionBanks": questionBanks,
		"pagination": gin.H{
			"currentPage": query.Page,
			"pageSize":    query.Limit,
			"totalCount":  totalCount,
		},
	})
}

func (h *HttpEndpoints) createQuestionBank(c *gin.Context) {
	token := tokenClaims(c)

	var req qbankTypes.QuestionBank
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	req.CreatedBy = token.Subject

	questionBank, err := h.qbankDBConn.CreateQuestionBank(token.InstanceID, req)
	if err != nil {
		slog.Error("failed to create question bank", slog.String("instanceID", token.InstanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create question bank"})
		return
	}

	leafGroups := importer.PreSeedLeafGroups(questionBank.ID)
	if err := h.qbankDBConn.SeedLeafGroups(token.InstanceID, questionBank.ID, leafGroups); err != nil {
		slog.Error("failed to seed leaf groups", slog.String("questionBankID", questionBank.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed leaf groups"})
		return
	}
	questionBank.IsSeeded = true

	slog.Info("question bank created", slog.String("instanceID", token.InstanceID), slog.String("questionBankID", questionBank.ID.Hex()), slog.Int("leafGroups", len(leafGroups)))
	c.JSON(http.StatusCreated, gin.H{"questionBank": questionBank})
}

func (h *HttpEndpoints) getQuestionBank(c *gin.Context) {
	token := tokenClaims(c)
	bankID := c.Param("bankID")

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, bankID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionBank": questionBank})
}

func (h *HttpEndpoints) updateQuestionBank(c *gin.Context) {
	token := tokenClaims(c)
	bankID := c.Param("bankID")

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, bankID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	var req qbankTypes.QuestionBank
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	questionBank.Title = req.Title
	questionBank.Description = req.Description
	questionBank.Version = req.Version

	if err := h.qbankDBConn.UpdateQuestionBank(token.InstanceID, questionBank); err != nil {
		slog.Error("failed to update question bank", slog.String("questionBankID", bankID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update question bank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questionBank": questionBank})
}

func (h *HttpEndpoints) deleteQuestionBank(c *gin.Context) {
	token := tokenClaims(c)
	bankID := c.Param("bankID")

	if err := h.qbankDBConn.DeleteQuestionBank(token.InstanceID, bankID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
			return
		}
		slog.Error("failed to delete question bank", slog.String("questionBankID", bankID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question bank deleted"})
}

// seedQuestionBank retries taxonomy seeding for banks where the initial
// attempt failed. Already seeded banks are rejected.
func (h *HttpEndpoints) seedQuestionBank(c *gin.Context) {
	token := tokenClaims(c)
	bankID := c.Param("bankID")

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, bankID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	leafGroups := importer.PreSeedLeafGroups(questionBank.ID)
	if err := h.qbankDBConn.SeedLeafGroups(token.InstanceID, questionBank.ID, leafGroups); err != nil {
		if errors.Is(err, qbankDB.ErrAlreadySeeded) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to seed leaf groups", slog.String("questionBankID", bankID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed leaf groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "leaf groups seeded", "count": len(leafGroups)})
}

func (h *HttpEndpoints) getQuestionBankLeafGroups(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	leafGroups, err := h.qbankDBConn.GetLeafGroupsForBank(token.InstanceID, questionBank.ID)
	if err != nil {
		slog.Error("failed to fetch leaf groups", slog.String("questionBankID", questionBank.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch leaf groups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leafGroups": leafGroups})
}

func (h *HttpEndpoints) getQuestionBankQuestions(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	questions, err := h.qbankDBConn.GetQuestionsForBank(token.InstanceID, questionBank.ID)
	if err != nil {
		slog.Error("failed to fetch questions", slog.String("questionBankID", questionBank.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch questions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (h *HttpEndpoints) createQuestionBankQuestion(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	var req qbankTypes.Question
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.QuestionBankID = questionBank.ID

	leafGroup, err := h.qbankDBConn.GetLeafGroupByID(token.InstanceID, req.LeafGroupID.Hex())
	if err != nil || leafGroup.QuestionBankID != questionBank.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "leaf group does not belong to this question bank"})
		return
	}

	question, err := h.qbankDBConn.CreateQuestion(token.InstanceID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"question": question})
}

func (h *HttpEndpoints) getQuestionBankChoiceCollections(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	collections, err := h.qbankDBConn.GetChoiceCollectionsForBank(token.InstanceID, questionBank.ID)
	if err != nil {
		slog.Error("failed to fetch choice collections", slog.String("questionBankID", questionBank.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch choice collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"choiceCollections": collections})
}

func (h *HttpEndpoints) createQuestionBankChoiceCollection(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	var req qbankTypes.ChoiceCollection
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.QuestionBankID = questionBank.ID

	collection, err := h.qbankDBConn.CreateChoiceCollection(token.InstanceID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"choiceCollection": collection})
}

func (h *HttpEndpoints) deleteQuestionBankQuestion(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	question, err := h.qbankDBConn.GetQuestionByID(token.InstanceID, c.Param("questionID"))
	if err != nil || question.QuestionBankID != questionBank.ID || !question.QuestionnaireID.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	if err := h.qbankDBConn.DeleteQuestion(token.InstanceID, question.ID.Hex()); err != nil {
		slog.Error("failed to delete question", slog.String("questionID", question.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

func (h *HttpEndpoints) getQuestionBankChoiceCollection(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	collection, err := h.qbankDBConn.GetChoiceCollectionByID(token.InstanceID, c.Param("collectionID"))
	if err != nil || collection.QuestionBankID != questionBank.ID || !collection.QuestionnaireID.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "choice collection not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"choiceCollection": collection})
}

func (h *HttpEndpoints) updateQuestionBankChoiceCollection(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	collection, err := h.qbankDBConn.GetChoiceCollectionByID(token.InstanceID, c.Param("collectionID"))
	if err != nil || collection.QuestionBankID != questionBank.ID || !collection.QuestionnaireID.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "choice collection not found"})
		return
	}

	var req qbankTypes.ChoiceCollection
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	collection.Name = req.Name
	collection.Label = req.Label
	collection.Choices = req.Choices

	if err := h.qbankDBConn.UpdateChoiceCollection(token.InstanceID, collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"choiceCollection": collection})
}

func (h *HttpEndpoints) deleteQuestionBankChoiceCollection(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}

	collection, err := h.qbankDBConn.GetChoiceCollectionByID(token.InstanceID, c.Param("collectionID"))
	if err != nil || collection.QuestionBankID != questionBank.ID || !collection.QuestionnaireID.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "choice collection not found"})
		return
	}

	if err := h.qbankDBConn.DeleteChoiceCollection(token.InstanceID, collection.ID.Hex()); err != nil {
		if errors.Is(err, qbankDB.ErrChoiceCollectionInUse) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		slog.Error("failed to delete choice collection", slog.String("collectionID", collection.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete choice collection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "choice collection deleted"})
}

// uploadQuestionBankImport stores the uploaded XLSForm workbook and
// queues an import task for the transcoder job.
func (h *HttpEndpoints) uploadQuestionBankImport(c *gin.Context) {
	token := tokenClaims(c)

	questionBank, err := h.qbankDBConn.GetQuestionBankByID(token.InstanceID, c.Param("bankID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question bank not found"})
		return
	}
	if !questionBank.IsSeeded {
		c.JSON(http.StatusConflict, gin.H{"error": "question bank is not seeded yet"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	contentType, err := utils.ValidateFileTypeFromContent(file, []string{utils.ContentTypeXLSX})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("%s_%d%s", questionBank.ID.Hex(), time.Now().Unix(), utils.GetFileExtensionFromContentType(contentType))
	targetPath := filepath.Join(h.filestorePath, token.InstanceID, "question-bank-imports", filename)
	if err := c.SaveUploadedFile(file, targetPath); err != nil {
		slog.Error("failed to save uploaded file", slog.String("path", targetPath), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	task, err := h.qbankDBConn.CreateTranscodeTask(token.InstanceID, qbankTypes.TranscodeTask{
		TaskType:       qbankTypes.TRANSCODE_TASK_TYPE_IMPORT,
		QuestionBankID: questionBank.ID,
		SourceFile:     targetPath,
		CreatedBy:      token.Subject,
	})
	if err != nil {
		slog.Error("failed to create import task", slog.String("questionBankID", questionBank.ID.Hex()), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create import task"})
		return
	}

	slog.Info("import task queued", slog.String("instanceID", token.InstanceID), slog.String("taskID", task.ID.Hex()), slog.String("sourceFile", targetPath))
	c.JSON(http.StatusCreated, gin.H{"task": task})
}
