package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/services"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.ApplyInput
	if !bindStrict(c, "ApplicationHandler.Apply", &req) {
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "application": app})
}

func (h *ApplicationHandler) Mine(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	apps, err := h.svc.Mine(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ForJob(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	apps, err := h.svc.ForJob(c.Request.Context(), p, c.Param("jobId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.UpdateStatusInput
	if !bindStrict(c, "ApplicationHandler.UpdateStatus", &req) {
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated successfully", "application": app})
}
