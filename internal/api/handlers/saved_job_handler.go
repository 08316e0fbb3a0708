package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/services"
)

type SavedJobHandler struct {
	svc services.SavedJobService
}

func NewSavedJobHandler(svc services.SavedJobService) *SavedJobHandler {
	return &SavedJobHandler{svc: svc}
}

func (h *SavedJobHandler) Save(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.SaveJobInput
	if !bindStrict(c, "SavedJobHandler.Save", &req) {
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job saved successfully", "savedJob": saved})
}

func (h *SavedJobHandler) Unsave(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := h.svc.Unsave(c.Request.Context(), p, c.Param("jobId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job removed from saved"})
}

func (h *SavedJobHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	saved, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savedJobs": saved})
}
