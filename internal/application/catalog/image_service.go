package catalog

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/dukahub/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadURLExpiration = 15 * time.Minute

var allowedImageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService handles image registration and presigned uploads. File bytes
// go straight from the browser to object storage; the API only hands out
// upload URLs and records the resulting object URL.
type ImageService struct {
	imageRepo   catalog.ImageRepository
	productRepo catalog.ProductRepository
	storeRepo   store.StoreRepository
	objects     storage.ObjectStorageService
	logger      *zap.Logger
}

// NewImageService creates a new ImageService
func NewImageService(
	imageRepo catalog.ImageRepository,
	productRepo catalog.ProductRepository,
	storeRepo store.StoreRepository,
	objects storage.ObjectStorageService,
	logger *zap.Logger,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		objects:     objects,
		logger:      logger,
	}
}

// GenerateUploadURL returns a presigned PUT URL for a new image object
func (s *ImageService) GenerateUploadURL(ctx context.Context, ownerID, storeID uuid.UUID, req UploadURLRequest) (*UploadURLResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	ext, ok := allowedImageContentTypes[strings.ToLower(req.ContentType)]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only JPEG, PNG, GIF and WebP images are accepted")
	}

	key := fmt.Sprintf("stores/%s/images/%s%s", storeID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.objects.GenerateUploadURL(ctx, key, req.ContentType, uploadURLExpiration)
	if err != nil {
		s.logger.Error("Failed to presign upload URL",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("STORAGE_ERROR", "Could not generate upload URL")
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: key,
		ExpiresAt: expiresAt,
	}, nil
}

// Create records an uploaded image, optionally attached to a product
func (s *ImageService) Create(ctx context.Context, ownerID, storeID uuid.UUID, req CreateImageRequest) (*ImageResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	var img *catalog.Image
	var err error

	if req.ProductID != nil {
		if _, err := s.productRepo.FindByIDForStore(ctx, storeID, *req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", "Product not found in this store")
			}
			return nil, err
		}
		img, err = catalog.NewProductImage(storeID, *req.ProductID, req.URL)
	} else {
		img, err = catalog.NewStoreImage(storeID, req.URL)
	}
	if err != nil {
		return nil, err
	}

	if err := s.imageRepo.Save(ctx, img); err != nil {
		return nil, err
	}

	resp := ToImageResponse(img)
	return &resp, nil
}

// GetByID retrieves an image from one of the acting user's stores
func (s *ImageService) GetByID(ctx context.Context, ownerID, storeID, id uuid.UUID) (*ImageResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	img, err := s.imageRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToImageResponse(img)
	return &resp, nil
}

// List retrieves the images of one of the acting user's stores. When
// productID is set only that product's images are returned.
func (s *ImageService) List(ctx context.Context, ownerID, storeID uuid.UUID, productID *uuid.UUID) ([]ImageResponse, error) {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	var images []catalog.Image
	var err error

	if productID != nil {
		images, err = s.imageRepo.FindAllForProduct(ctx, *productID)
	} else {
		images, err = s.imageRepo.FindAllForStore(ctx, storeID)
	}
	if err != nil {
		return nil, err
	}

	return ToImageResponses(images), nil
}

// Delete removes an image record and best-effort deletes the stored object
func (s *ImageService) Delete(ctx context.Context, ownerID, storeID, id uuid.UUID) error {
	if _, err := s.storeRepo.FindByIDForOwner(ctx, ownerID, storeID); err != nil {
		return err
	}

	img, err := s.imageRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}

	if err := s.imageRepo.DeleteForStore(ctx, storeID, id); err != nil {
		return err
	}

	if key := objectKeyFromURL(img.URL); key != "" {
		if err := s.objects.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("Failed to delete stored object",
				zap.String("object_key", key),
				zap.Error(err))
		}
	}

	return nil
}

// objectKeyFromURL extracts the storage key from an image URL produced by
// our own upload flow. URLs from other origins yield an empty key and the
// object is left alone.
func objectKeyFromURL(url string) string {
	idx := strings.Index(url, "/stores/")
	if idx < 0 {
		return ""
	}
	return path.Clean(strings.TrimPrefix(url[idx:], "/"))
}
