package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/archplans/plan-portal/internal/auth"
	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/logging"
	"github.com/gin-gonic/gin"
)

const maxMemory = 32 << 20

// Uploader forwards a multipart body to the backend.
type Uploader interface {
	UploadPlan(ctx context.Context, token string, body io.Reader, contentType string) (*backend.Plan, error)
}

// Notifier is told when a plan was created.
type Notifier interface {
	PlanUploaded(ctx context.Context)
}

type Handler struct {
	uploader Uploader
	notifier Notifier
}

// New creates a Handler. notifier may be nil.
func New(uploader Uploader, notifier Notifier) *Handler {
	return &Handler{uploader: uploader, notifier: notifier}
}

// Register registers the upload route on an admin-only group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/plans/upload", h.UploadPlan)
}

// UploadPlan validates the form and re-streams it to the backend.
// POST /admin/plans/upload (multipart)
func (h *Handler) UploadPlan(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form required"})
		return
	}
	defer c.Request.MultipartForm.RemoveAll()

	form, err := ParseForm(c.Request.MultipartForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeMultipart(mw, form))
	}()

	plan, err := h.uploader.UploadPlan(ctx, auth.AccessToken(c), pr, mw.FormDataContentType())
	pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		switch {
		case errors.Is(err, backend.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		case errors.Is(err, backend.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		default:
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
				c.JSON(http.StatusBadRequest, gin.H{"error": apiErr.Message})
				return
			}
			logging.FromContext(ctx).LogError("upload_plan", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to upload plan"})
		}
		return
	}

	if h.notifier != nil {
		h.notifier.PlanUploaded(ctx)
	}
	logging.FromContext(ctx).LogInfof("upload_plan", "uploaded plan %q with %d plan and %d final images",
		form.Title, len(form.PlanImages), len(form.FinalImages))
	c.JSON(http.StatusCreated, gin.H{"plan": plan.Record()})
}

func writeMultipart(mw *multipart.Writer, form *PlanForm) error {
	for _, f := range form.Fields() {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	if err := copyFiles(mw, FieldPlanImages, form.PlanImages); err != nil {
		return err
	}
	if err := copyFiles(mw, FieldFinalImages, form.FinalImages); err != nil {
		return err
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// fileDisposition quotes the way multipart.Writer.CreateFormFile does.
func fileDisposition(field, filename string) string {
	return fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(field), quoteEscaper.Replace(filename))
}

func copyFiles(mw *multipart.Writer, field string, files []*multipart.FileHeader) error {
	for _, fh := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fileDisposition(field, fh.Filename))
		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return err
		}
		src, err := fh.Open()
		if err != nil {
			return err
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("copy %s: %w", fh.Filename, err)
		}
	}
	return nil
}
