package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Habid-Marun/getsemani-vivo/internal/metrics"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
	"github.com/Habid-Marun/getsemani-vivo/internal/storage"
)

const MaxImageSize = 5 << 20

var (
	ErrImageNotFound    = errors.New("image not found")
	ErrImageTooLarge    = errors.New("image too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// allowedImageTypes maps an accepted content type to the extension used when
// the original filename carries none.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

type ImageService struct {
	imageRepo    repository.ImageRepository
	businessRepo repository.BusinessRepository
	store        *storage.UploadStore
}

type UploadImageRequest struct {
	OriginalFilename string
	ContentType      string
	Size             int64
	Content          io.Reader
	IsPrimary        bool
}

func NewImageService(imageRepo repository.ImageRepository, businessRepo repository.BusinessRepository, store *storage.UploadStore) *ImageService {
	return &ImageService{
		imageRepo:    imageRepo,
		businessRepo: businessRepo,
		store:        store,
	}
}

// Upload stores the file under a fresh random name and records it. A failed
// database insert removes the file again so the directory never outgrows the
// table.
func (s *ImageService) Upload(ctx context.Context, actor *model.User, businessID int64, req UploadImageRequest) (*model.BusinessImage, error) {
	if _, err := s.authorizedBusiness(ctx, actor, businessID); err != nil {
		return nil, err
	}

	contentType := strings.ToLower(strings.TrimSpace(req.ContentType))
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	defaultExt, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrInvalidImageType
	}
	if req.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(req.OriginalFilename))
	if _, ok := allowedImageExtensions[ext]; !ok {
		ext = defaultExt
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if err := s.store.SaveBusinessImage(filename, io.LimitReader(req.Content, MaxImageSize)); err != nil {
		return nil, err
	}

	image := &model.BusinessImage{
		BusinessID: businessID,
		Filename:   filename,
		URL:        s.store.BusinessImageURL(filename),
		IsPrimary:  req.IsPrimary,
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		s.store.RemoveBusinessImage(filename)
		return nil, err
	}
	metrics.IncImageUploaded()

	return image, nil
}

// ListOwned returns a business's images to its owner or an admin.
func (s *ImageService) ListOwned(ctx context.Context, actor *model.User, businessID int64) ([]*model.BusinessImage, error) {
	if _, err := s.authorizedBusiness(ctx, actor, businessID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByBusiness(ctx, businessID)
}

// ListPublic returns a business's images to anyone, but only for approved
// businesses; anything else reads as missing.
func (s *ImageService) ListPublic(ctx context.Context, businessID int64) ([]*model.BusinessImage, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if business.Status != model.BusinessStatusApproved {
		return nil, ErrBusinessNotFound
	}

	return s.imageRepo.ListByBusiness(ctx, businessID)
}

// SetPrimary promotes one image to primary and demotes every sibling.
func (s *ImageService) SetPrimary(ctx context.Context, actor *model.User, businessID, imageID int64) (*model.BusinessImage, error) {
	if _, err := s.authorizedBusiness(ctx, actor, businessID); err != nil {
		return nil, err
	}

	image, err := s.imageForBusiness(ctx, businessID, imageID)
	if err != nil {
		return nil, err
	}

	updated, err := s.imageRepo.SetPrimary(ctx, image.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the row and the stored file. Sibling positions are left
// untouched.
func (s *ImageService) Delete(ctx context.Context, actor *model.User, businessID, imageID int64) error {
	if _, err := s.authorizedBusiness(ctx, actor, businessID); err != nil {
		return err
	}

	image, err := s.imageForBusiness(ctx, businessID, imageID)
	if err != nil {
		return err
	}

	if err := s.imageRepo.Delete(ctx, image.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrImageNotFound
		}
		return err
	}

	return s.store.RemoveBusinessImage(image.Filename)
}

func (s *ImageService) authorizedBusiness(ctx context.Context, actor *model.User, businessID int64) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(actor, business) {
		return nil, ErrNotOwner
	}
	return business, nil
}

// imageForBusiness loads an image and rejects ids that belong to some other
// business, so one owner cannot address another owner's images.
func (s *ImageService) imageForBusiness(ctx context.Context, businessID, imageID int64) (*model.BusinessImage, error) {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	if image.BusinessID != businessID {
		return nil, ErrImageNotFound
	}
	return image, nil
}
