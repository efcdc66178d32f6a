package usecase

import (
	"context"
	"errors"

	"mediconnect/internal/converter"
	"mediconnect/internal/delivery/dto"
	"mediconnect/internal/domain/entity"
	"mediconnect/internal/domain/repository"
	"mediconnect/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceUsecase interface {
	GetAll(ctx context.Context, page, limit int) (*dto.ServiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type serviceUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	serviceRepo repository.ServiceRepository
	auditSvc    service.AuditService
}

func NewServiceUsecase(db *gorm.DB, log *logrus.Logger, serviceRepo repository.ServiceRepository, auditSvc service.AuditService) ServiceUsecase {
	return &serviceUsecase{
		db:          db,
		log:         log,
		serviceRepo: serviceRepo,
		auditSvc:    auditSvc,
	}
}

func (u *serviceUsecase) GetAll(ctx context.Context, page, limit int) (*dto.ServiceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	offset := (page - 1) * limit

	services, total, err := u.serviceRepo.FindAll(ctx, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find services: %+v", err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    total,
	}, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	svc := &entity.Service{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}

	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	userID := userIDFromContext(ctx)
	if err := u.auditSvc.LogCreate(ctx, u.db.WithContext(ctx), userID, entity.AuditActionServiceCreate, "service", svc.ID.String(), converter.ServiceToResponse(svc)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Service created: id=%s, title=%s", svc.ID, svc.Title)
	return converter.ServiceToResponse(svc), nil
}

func (u *serviceUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	oldValue := converter.ServiceToResponse(svc)

	if req.Title != "" {
		svc.Title = req.Title
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.Icon != "" {
		svc.Icon = req.Icon
	}

	if err := u.serviceRepo.Update(ctx, svc); err != nil {
		u.log.Warnf("Failed to update service %s: %+v", id, err)
		return nil, err
	}

	userID := userIDFromContext(ctx)
	newValue := converter.ServiceToResponse(svc)
	if err := u.auditSvc.LogUpdate(ctx, u.db.WithContext(ctx), userID, entity.AuditActionServiceUpdate, "service", id.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *serviceUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", id, err)
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	affected, err := u.serviceRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete service %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrServiceNotFound
	}

	userID := userIDFromContext(ctx)
	if err := u.auditSvc.LogDelete(ctx, u.db.WithContext(ctx), userID, entity.AuditActionServiceDelete, "service", id.String(), converter.ServiceToResponse(svc)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	u.log.Infof("Service deleted: id=%s", id)
	return nil
}
