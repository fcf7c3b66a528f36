package handler

import (
	"Touchline/internal/api/middleware"
	"Touchline/internal/pkg/response"
	"Touchline/internal/service"
	"io"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

const maxAttachmentSize = 5 << 20

type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

// Upload 表单字段 file
func (s *AttachmentHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > maxAttachmentSize {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "read upload file error", "err", err)
		response.Error(c, service.ErrParamInvalid)
		return
	}

	attachment, err := s.attachmentSvc.Upload(c.Request.Context(), middleware.CurrentUserID(c), file.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachment)
}

func (s *AttachmentHandler) List(c *gin.Context) {
	list, err := s.attachmentSvc.List(c.Request.Context(), pageQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AttachmentHandler) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.attachmentSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
