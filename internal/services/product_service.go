package services

import (
	"context"
	"net/url"
	"strconv"

	"negromart_seller/internal/api"
	"negromart_seller/internal/logger"
	"negromart_seller/internal/models"
	"negromart_seller/internal/services/dto"
)

// ProductService takes ready multipart payloads; building and validating
// them is the product form's job.
type ProductService interface {
	List(ctx context.Context, criteria dto.ProductCriteria) (*dto.Page[models.Product], error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, payload *api.Multipart) (*models.Product, error)
	Update(ctx context.Context, id int64, payload *api.Multipart) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	RelatedData(ctx context.Context) (*models.RelatedData, error)
}

type productService struct {
	client *api.Client
}

func NewProductService(client *api.Client) ProductService {
	return &productService{client: client}
}

func (s *productService) List(ctx context.Context, criteria dto.ProductCriteria) (*dto.Page[models.Product], error) {
	query := url.Values{}
	if criteria.Status != "" {
		query.Set("status", string(criteria.Status))
	}
	if criteria.Search != "" {
		query.Set("search", criteria.Search)
	}
	if criteria.Page > 0 {
		query.Set("page", strconv.Itoa(criteria.Page))
	}

	var page dto.Page[models.Product]
	if err := s.client.GetJSON(ctx, pathProducts, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.client.GetJSON(ctx, itemPath(pathProducts, id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) Create(ctx context.Context, payload *api.Multipart) (*models.Product, error) {
	var p models.Product
	if err := s.client.PostMultipart(ctx, pathProducts, payload, &p); err != nil {
		return nil, err
	}
	logger.CtxInfo(ctx, "product created", "product_id", p.ID, "files", payload.FileNames())
	return &p, nil
}

func (s *productService) Update(ctx context.Context, id int64, payload *api.Multipart) (*models.Product, error) {
	var p models.Product
	if err := s.client.PutMultipart(ctx, itemPath(pathProducts, id), payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, itemPath(pathProducts, id))
}

func (s *productService) RelatedData(ctx context.Context) (*models.RelatedData, error) {
	var data models.RelatedData
	if err := s.client.GetJSON(ctx, pathRelatedData, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
