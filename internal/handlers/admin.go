package handlers

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campushq/course-assistant-backend/internal/platform/logger"
	"github.com/campushq/course-assistant-backend/internal/services"
)

// AdminHandler exposes the idempotent provisioning endpoints.
type AdminHandler struct {
	log       *logger.Logger
	provision services.ProvisionService
}

func NewAdminHandler(log *logger.Logger, provision services.ProvisionService) *AdminHandler {
	return &AdminHandler{
		log:       log.With("handler", "AdminHandler"),
		provision: provision,
	}
}

// CheckOpenAI reports whether the model provider key is configured, so a
// frontend can surface setup problems before any upload.
func (h *AdminHandler) CheckOpenAI(c *gin.Context) {
	available := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != ""
	message := "OpenAI API key is configured"
	if !available {
		message = "OpenAI API key is not configured"
	}
	RespondOK(c, gin.H{"available": available, "message": message})
}

func (h *AdminHandler) SetupVectorStore(c *gin.Context) {
	status, err := h.provision.SetupVectorStore(c.Request.Context())
	if err != nil {
		h.log.Error("SetupVectorStore failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, status)
}

func (h *AdminHandler) SetupStorage(c *gin.Context) {
	status, err := h.provision.SetupStorage(c.Request.Context())
	if err != nil {
		h.log.Error("SetupStorage failed", "error", err)
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, status)
}
