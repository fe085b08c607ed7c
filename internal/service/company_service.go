package service

import (
	"context"
	"fmt"
	"io"

	"newsportal/internal/apperrors"
	"newsportal/internal/config"
	"newsportal/internal/models"
	"newsportal/internal/permissions"
	"newsportal/internal/repository"
	"newsportal/internal/storage"
)

// CompanyListing is either a flat list or the nested selection view,
// never both.
type CompanyListing struct {
	Companies []models.Company
	Selection []models.SelectionCompany
}

type CompanyService interface {
	List(ctx context.Context, actor *models.User, selection bool) (*CompanyListing, error)
	Get(ctx context.Context, actor *models.User, companyID string) (*models.Company, error)
	Create(ctx context.Context, actor *models.User, req CompanyRequest) (*models.Company, error)
	Update(ctx context.Context, actor *models.User, companyID string, req CompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, actor *models.User, companyID string) error
	UploadLogo(ctx context.Context, actor *models.User, companyID, fileName string, file io.Reader, size int64) (*models.Company, error)
}

type companyService struct {
	companyRepo repository.CompanyRepository
	storage     storage.Storage
	evaluator   *permissions.Evaluator
	cfg         *config.Config
}

func NewCompanyService(companyRepo repository.CompanyRepository, st storage.Storage, evaluator *permissions.Evaluator, cfg *config.Config) CompanyService {
	return &companyService{
		companyRepo: companyRepo,
		storage:     st,
		evaluator:   evaluator,
		cfg:         cfg,
	}
}

// List: non-staff sees only their own company; staff sees all, or the
// nested selection view when requested.
func (s *companyService) List(ctx context.Context, actor *models.User, selection bool) (*CompanyListing, error) {
	if !actor.IsStaff {
		if actor.CompanyID == nil {
			return &CompanyListing{Companies: []models.Company{}}, nil
		}
		company, err := s.companyRepo.GetByID(ctx, *actor.CompanyID)
		if err != nil {
			return nil, err
		}
		return &CompanyListing{Companies: []models.Company{*company}}, nil
	}

	if selection {
		nested, err := s.companyRepo.ListSelection(ctx)
		if err != nil {
			return nil, err
		}
		return &CompanyListing{Selection: nested}, nil
	}

	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &CompanyListing{Companies: companies}, nil
}

func (s *companyService) Get(ctx context.Context, actor *models.User, companyID string) (*models.Company, error) {
	if !actor.IsStaff {
		if actor.CompanyID == nil || *actor.CompanyID != companyID {
			return nil, fmt.Errorf("можно просматривать только свою компанию: %w", apperrors.ErrForbidden)
		}
	}

	return s.companyRepo.GetByID(ctx, companyID)
}

func (s *companyService) Create(ctx context.Context, actor *models.User, req CompanyRequest) (*models.Company, error) {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return nil, fmt.Errorf("создание компаний доступно только staff: %w", apperrors.ErrForbidden)
	}

	company := &models.Company{Name: req.Name}
	if req.URL != "" {
		company.URL = &req.URL
	}
	if req.Address != "" {
		company.Address = &req.Address
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

func (s *companyService) Update(ctx context.Context, actor *models.User, companyID string, req CompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if !s.evaluator.AllowsCompanyObject(actor, company) {
		return nil, fmt.Errorf("нет прав для обновления этой компании: %w", apperrors.ErrForbidden)
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.URL != "" {
		company.URL = &req.URL
	}
	if req.Address != "" {
		company.Address = &req.Address
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

func (s *companyService) Delete(ctx context.Context, actor *models.User, companyID string) error {
	if !s.evaluator.Allows(actor, permissions.ActionManage) {
		return fmt.Errorf("удаление компаний доступно только staff: %w", apperrors.ErrForbidden)
	}

	return s.companyRepo.Delete(ctx, companyID)
}

// UploadLogo stores the file in MinIO and keeps only the object path on
// the company row. The previous logo object is removed best-effort.
func (s *companyService) UploadLogo(ctx context.Context, actor *models.User, companyID, fileName string, file io.Reader, size int64) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if !s.evaluator.AllowsCompanyObject(actor, company) {
		return nil, fmt.Errorf("нет прав для изменения логотипа: %w", apperrors.ErrForbidden)
	}

	objectName, err := s.storage.UploadLogo(ctx, companyID, fileName, file, size)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.UpdateLogo(ctx, companyID, objectName); err != nil {
		s.storage.DeleteLogo(ctx, objectName)
		return nil, err
	}

	if company.Logo != nil {
		s.storage.DeleteLogo(ctx, *company.Logo)
	}

	company.Logo = &objectName
	return company, nil
}
