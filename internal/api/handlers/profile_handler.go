package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/services"
)

type ProfileHandler struct {
	svc   services.ProfileService
	media services.MediaService
}

func NewProfileHandler(svc services.ProfileService, media services.MediaService) *ProfileHandler {
	return &ProfileHandler{svc: svc, media: media}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	profile, err := h.svc.GetMine(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.ProfileInput
	if !bindStrict(c, "ProfileHandler.Create", &req) {
		return
	}

	profile, err := h.svc.Create(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Profile created successfully", "profile": profile})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.UpdateProfileInput
	if !bindStrict(c, "ProfileHandler.Update", &req) {
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "profile": profile})
}

func (h *ProfileHandler) GetPublic(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	profile, err := h.svc.GetPublic(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UploadResume(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	up, closer, ok := readUpload(c, "ProfileHandler.UploadResume", services.MaxResumeBytes)
	if !ok {
		return
	}
	defer closer.Close()

	profile, err := h.media.UploadResume(c.Request.Context(), p, up)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Resume uploaded successfully", "profile": profile})
}
