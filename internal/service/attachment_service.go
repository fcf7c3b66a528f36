package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"bytes"
	"context"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	log "log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// ObjectStorage 附件对象存储，由 minio.Storage 实现
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

type AttachmentService interface {
	// Upload 保存原图并生成 200x77 缩略图
	Upload(ctx context.Context, userID uint64, filename string, data []byte) (*dto.AttachmentDTO, error)
	List(ctx context.Context, page int) (*dto.AttachmentListDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepo
	storage        ObjectStorage
	perPage        int
}

func NewAttachmentService(attachmentRepo repository.AttachmentRepo, storage ObjectStorage, perPage int) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		perPage:        perPage,
	}
}

var attachmentFormats = map[string]imaging.Format{
	".jpg":  imaging.JPEG,
	".jpeg": imaging.JPEG,
	".png":  imaging.PNG,
	".gif":  imaging.GIF,
}

func (s *attachmentServiceImpl) Upload(ctx context.Context, userID uint64, filename string, data []byte) (*dto.AttachmentDTO, error) {
	ext := strings.ToLower(path.Ext(filename))
	format, ok := attachmentFormats[ext]
	if !ok {
		return nil, ErrFileNotSupported
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrFileNotSupported
	}

	var buf bytes.Buffer
	thumbnail := imaging.Fill(src, consts.PreviewWidth, consts.PreviewHeight, imaging.Center, imaging.Lanczos)
	if err = imaging.Encode(&buf, thumbnail, format); err != nil {
		return nil, err
	}

	objectName := consts.AttachmentPath + time.Now().Format("2006/01/") + uuid.NewString() + ext
	previewName := util.PreviewName(objectName)
	if err = s.storage.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		log.ErrorContext(ctx, "attachment upload failed", "object", objectName, "err", err)
		return nil, UnExpectedError
	}
	if err = s.storage.Upload(ctx, previewName, &buf, int64(buf.Len()), contentType); err != nil {
		log.ErrorContext(ctx, "attachment preview upload failed", "object", previewName, "err", err)
		_ = s.storage.Delete(ctx, objectName)
		return nil, UnExpectedError
	}

	attachment := &model.Attachment{
		UserID:      userID,
		File:        objectName,
		Preview:     previewName,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	if err = s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return s.toDTO(attachment), nil
}

func (s *attachmentServiceImpl) List(ctx context.Context, page int) (*dto.AttachmentListDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	list, total, err := s.attachmentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.AttachmentDTO, 0, len(list))
	for _, a := range list {
		res = append(res, s.toDTO(a))
	}
	return &dto.AttachmentListDTO{PageDTO: newPage(page, s.perPage, total), Attachments: res}, nil
}

// Delete 先删记录，对象存储清理失败只记日志
func (s *attachmentServiceImpl) Delete(ctx context.Context, id uint64) error {
	attachment, err := s.attachmentRepo.Get(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrAttachmentNotFound
		}
		return err
	}
	if err = s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	for _, name := range []string{attachment.File, attachment.Preview} {
		if name == "" {
			continue
		}
		if err = s.storage.Delete(ctx, name); err != nil {
			log.WarnContext(ctx, "attachment object delete failed", "object", name, "err", err)
		}
	}
	return nil
}

func (s *attachmentServiceImpl) toDTO(a *model.Attachment) *dto.AttachmentDTO {
	return &dto.AttachmentDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		URL:         s.storage.URL(a.File),
		PreviewURL:  s.storage.URL(a.Preview),
		ContentType: a.ContentType,
		Size:        a.Size,
		CreatedAt:   a.CreatedAt,
	}
}
