package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faq-autoreply/internal/domain/faq"
)

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Reply evaluates an inbound chat message against the FAQ catalogue.
func (h *Handler) Reply(c *gin.Context) {
	var req faq.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidInput(errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Reply(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TopMatches returns the entries that most often produced an auto-reply.
func (h *Handler) TopMatches(c *gin.Context) {
	stats, err := h.faqSvc.TopMatches(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	if stats == nil {
		stats = []faq.MatchStat{}
	}
	c.JSON(http.StatusOK, gin.H{"matches": stats})
}

// ListEntries returns entries filtered by the optional language and active query params.
func (h *Handler) ListEntries(c *gin.Context) {
	filter := faq.ListFilter{Language: c.Query("language")}
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, invalidInput("active must be a boolean", err))
			return
		}
		filter.Active = &active
	}

	entries, err := h.faqSvc.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	if entries == nil {
		entries = []faq.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateEntry adds a new FAQ entry.
func (h *Handler) CreateEntry(c *gin.Context) {
	var req faq.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidInput(errMessage(err), err))
		return
	}

	entry, err := h.faqSvc.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	h.audit(c, "create", entry.ID)
	c.JSON(http.StatusCreated, entry)
}

// GetEntry returns a single entry.
func (h *Handler) GetEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := h.faqSvc.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes an entry.
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.faqSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	h.audit(c, "delete", id)
	c.Status(http.StatusNoContent)
}

// ToggleEntry flips the active flag of an entry.
func (h *Handler) ToggleEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	entry, err := h.faqSvc.Toggle(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	h.audit(c, "toggle", id)
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) audit(c *gin.Context, action string, id int64) {
	subject := ""
	if claims, ok := getClaims(c); ok {
		subject = claims.Subject
	}
	h.logger.Info("faq admin action", "action", action, "id", id, "subject", subject, "request_id", getRequestID(c))
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, invalidInput("id must be a positive integer", err))
		return 0, false
	}
	return id, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
