package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"equipment-rental-backend/internal/domain"
	"equipment-rental-backend/internal/logger"
	"equipment-rental-backend/internal/repository"
)

type catalogService struct {
	equipmentRepo   repository.EquipmentRepository
	defaultPageSize int32
	maxPageSize     int32
}

func NewCatalogService(equipmentRepo repository.EquipmentRepository, defaultPageSize, maxPageSize int32) CatalogService {
	return &catalogService{
		equipmentRepo:   equipmentRepo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

func (s *catalogService) ListEquipment(ctx context.Context, filter CatalogFilter) ([]domain.Equipment, Pagination, error) {
	logger.EnterMethod("catalogService.ListEquipment", "category", filter.Category, "page", filter.Page, "limit", filter.Limit)

	switch filter.Availability {
	case "", domain.AvailabilityInHouse, domain.AvailabilityPartner:
	default:
		err := fmt.Errorf("%w: unknown availability %q", ErrInvalidRequest, filter.Availability)
		logger.ExitMethodWithError("catalogService.ListEquipment", err)
		return nil, Pagination{}, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, s.defaultPageSize, s.maxPageSize)
	items, total, err := s.equipmentRepo.List(ctx, repository.EquipmentFilter{
		Category:     strings.TrimSpace(filter.Category),
		Search:       strings.TrimSpace(filter.Search),
		Availability: filter.Availability,
		Page:         page,
		PageSize:     limit,
	})
	if err != nil {
		logger.ExitMethodWithError("catalogService.ListEquipment", err)
		return nil, Pagination{}, err
	}
	if items == nil {
		items = []domain.Equipment{}
	}

	logger.ExitMethod("catalogService.ListEquipment", "returned", len(items), "total", total)
	return items, NewPagination(page, limit, total), nil
}

// normalizePage defaults and caps a requested page size.
func normalizePage(page, limit, defaultSize, maxSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultSize
	}
	if maxSize > 0 && limit > maxSize {
		limit = maxSize
	}
	if limit < 1 {
		limit = 25
	}
	return page, limit
}

func (s *catalogService) GetEquipment(ctx context.Context, id string) (*domain.Equipment, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: equipment %s", ErrNotFound, id)
	}
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: equipment %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.equipmentRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}
