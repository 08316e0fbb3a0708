package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/services"
)

type CompanyHandler struct {
	svc   services.CompanyService
	media services.MediaService
}

func NewCompanyHandler(svc services.CompanyService, media services.MediaService) *CompanyHandler {
	return &CompanyHandler{svc: svc, media: media}
}

func (h *CompanyHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	company, err := h.svc.GetMine(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

func (h *CompanyHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.CompanyInput
	if !bindStrict(c, "CompanyHandler.Create", &req) {
		return
	}

	company, err := h.svc.Create(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Company created successfully", "company": company})
}

func (h *CompanyHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req services.UpdateCompanyInput
	if !bindStrict(c, "CompanyHandler.Update", &req) {
		return
	}

	company, err := h.svc.Update(c.Request.Context(), p, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company updated successfully", "company": company})
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted successfully"})
}

func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	up, closer, ok := readUpload(c, "CompanyHandler.UploadLogo", services.MaxLogoBytes)
	if !ok {
		return
	}
	defer closer.Close()

	company, err := h.media.UploadLogo(c.Request.Context(), p, up)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logo uploaded successfully", "company": company})
}
