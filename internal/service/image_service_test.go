package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
	"github.com/Habid-Marun/getsemani-vivo/internal/storage"
)

type stubBusinessRepo struct {
	repository.BusinessRepository
	business *model.Business
}

func (s *stubBusinessRepo) FindByID(ctx context.Context, id int64) (*model.Business, error) {
	if s.business == nil || s.business.ID != id {
		return nil, repository.ErrNotFound
	}
	return s.business, nil
}

type stubImageRepo struct {
	repository.ImageRepository
	created *model.BusinessImage
}

func (s *stubImageRepo) Create(ctx context.Context, image *model.BusinessImage) error {
	image.ID = 1
	image.Position = 1
	s.created = image
	return nil
}

func newImageServiceForTest(t *testing.T, business *model.Business) (*ImageService, *stubImageRepo) {
	t.Helper()

	store, err := storage.NewUploadStore(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("create upload store: %v", err)
	}

	imageRepo := &stubImageRepo{}
	return NewImageService(imageRepo, &stubBusinessRepo{business: business}, store), imageRepo
}

func TestUpload_RejectsDisallowedContentType(t *testing.T) {
	owner := &model.User{ID: 7, Role: model.UserRoleBusiness}
	business := &model.Business{ID: 3, OwnerID: 7, Status: model.BusinessStatusApproved}
	svc, _ := newImageServiceForTest(t, business)

	// The extension alone must not get a file through; the declared type decides.
	for _, ctype := range []string{"", "application/pdf", "text/plain"} {
		_, err := svc.Upload(context.Background(), owner, 3, UploadImageRequest{
			OriginalFilename: "photo.png",
			ContentType:      ctype,
			Size:             100,
			Content:          strings.NewReader("not an image"),
		})
		if !errors.Is(err, ErrInvalidImageType) {
			t.Fatalf("content type %q: expected ErrInvalidImageType, got %v", ctype, err)
		}
	}
}

func TestUpload_ContentTypeFallsBackForOddExtension(t *testing.T) {
	owner := &model.User{ID: 7, Role: model.UserRoleBusiness}
	business := &model.Business{ID: 3, OwnerID: 7, Status: model.BusinessStatusApproved}
	svc, _ := newImageServiceForTest(t, business)

	image, err := svc.Upload(context.Background(), owner, 3, UploadImageRequest{
		OriginalFilename: "photo",
		ContentType:      "image/webp; charset=binary",
		Size:             10,
		Content:          strings.NewReader("fake content"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasSuffix(image.Filename, ".webp") {
		t.Fatalf("expected extension from content type, got %q", image.Filename)
	}
}

func TestUpload_RejectsOversizedFile(t *testing.T) {
	owner := &model.User{ID: 7, Role: model.UserRoleBusiness}
	business := &model.Business{ID: 3, OwnerID: 7, Status: model.BusinessStatusApproved}
	svc, _ := newImageServiceForTest(t, business)

	_, err := svc.Upload(context.Background(), owner, 3, UploadImageRequest{
		OriginalFilename: "big.jpg",
		ContentType:      "image/jpeg",
		Size:             MaxImageSize + 1,
		Content:          strings.NewReader("x"),
	})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestUpload_GeneratesFreshFilename(t *testing.T) {
	owner := &model.User{ID: 7, Role: model.UserRoleBusiness}
	business := &model.Business{ID: 3, OwnerID: 7, Status: model.BusinessStatusApproved}
	svc, imageRepo := newImageServiceForTest(t, business)

	image, err := svc.Upload(context.Background(), owner, 3, UploadImageRequest{
		OriginalFilename: "photo.JPG",
		ContentType:      "image/jpeg",
		Size:             12,
		Content:          strings.NewReader("fake content"),
	})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if image.Filename == "photo.JPG" {
		t.Fatal("expected stored filename to differ from the original")
	}
	if !strings.HasSuffix(image.Filename, ".jpg") {
		t.Fatalf("expected lowercase extension preserved, got %q", image.Filename)
	}
	if !strings.HasSuffix(image.URL, image.Filename) {
		t.Fatalf("expected url to reference the stored file, got %q", image.URL)
	}
	if imageRepo.created == nil {
		t.Fatal("expected row to be created")
	}
}

func TestUpload_NonOwnerForbidden(t *testing.T) {
	stranger := &model.User{ID: 99, Role: model.UserRoleUser}
	business := &model.Business{ID: 3, OwnerID: 7, Status: model.BusinessStatusApproved}
	svc, _ := newImageServiceForTest(t, business)

	_, err := svc.Upload(context.Background(), stranger, 3, UploadImageRequest{
		OriginalFilename: "photo.png",
		ContentType:      "image/png",
		Size:             10,
		Content:          strings.NewReader("zzz"),
	})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestUpload_MissingBusinessBeatsOwnership(t *testing.T) {
	stranger := &model.User{ID: 99, Role: model.UserRoleUser}
	svc, _ := newImageServiceForTest(t, nil)

	_, err := svc.Upload(context.Background(), stranger, 3, UploadImageRequest{
		OriginalFilename: "photo.png",
		ContentType:      "image/png",
		Size:             10,
		Content:          strings.NewReader("zzz"),
	})
	if !errors.Is(err, ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}
