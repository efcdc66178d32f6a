package repository

import (
	"context"
	"errors"

	"mediconnect/internal/domain/entity"
	domainRepo "mediconnect/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

type appointmentTypeRepository struct {
	db *gorm.DB
}

func NewAppointmentTypeRepository(db *gorm.DB) domainRepo.AppointmentTypeRepository {
	return &appointmentTypeRepository{db: db}
}

func (r *appointmentTypeRepository) FindAll(ctx context.Context) ([]entity.AppointmentType, error) {
	var types []entity.AppointmentType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *appointmentTypeRepository) FindByID(ctx context.Context, id string) (*entity.AppointmentType, error) {
	var appointmentType entity.AppointmentType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointmentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointmentType, nil
}
