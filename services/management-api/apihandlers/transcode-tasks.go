package apihandlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	mw "github.com/the-deep/qber-backend/pkg/apihelpers/middlewares"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddTranscodeTaskAPI(rg *gin.RouterGroup) {
	tasksGroup := rg.Group("/transcode-tasks")

	tasksGroup.Use(mw.GetAndValidateEditorUserJWT(h.tokenSignKey))
	tasksGroup.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		tasksGroup.GET("/:taskID", h.getTranscodeTask)
		tasksGroup.GET("/:taskID/result", h.downloadTranscodeTaskResult)
	}
}

func (h *HttpEndpoints) getTranscodeTask(c *gin.Context) {
	token := tokenClaims(c)

	task, err := h.qbankDBConn.GetTranscodeTaskByID(token.InstanceID, c.Param("taskID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *HttpEndpoints) downloadTranscodeTaskResult(c *gin.Context) {
	token := tokenClaims(c)

	task, err := h.qbankDBConn.GetTranscodeTaskByID(token.InstanceID, c.Param("taskID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if task.Status != qbankTypes.TRANSCODE_TASK_STATUS_SUCCESS || task.ResultFile == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "task has no result file"})
		return
	}

	// result files always live under the filestore
	cleanPath := filepath.Clean(task.ResultFile)
	if !strings.HasPrefix(cleanPath, filepath.Clean(h.filestorePath)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid result file path"})
		return
	}
	if _, err := os.Stat(cleanPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result file not found"})
		return
	}

	c.FileAttachment(cleanPath, filepath.Base(cleanPath))
}
