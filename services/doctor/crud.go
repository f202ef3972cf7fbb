package doctor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"curabot/database/repository"
	"curabot/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddDoctor links a new profile to an existing user holding the doctor role.
func (s *DefaultDoctorService) AddDoctor(ctx context.Context, in models.DoctorInput) (*models.Doctor, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, ErrInvalidDoctorUser
	}
	u, err := s.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidDoctorUser
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u.Role != models.RoleDoctor {
		return nil, ErrInvalidDoctorUser
	}

	if existing, err := s.Doctors.GetByUserID(ctx, in.UserID); err == nil && existing != nil {
		return nil, ErrDoctorExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing doctor: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = u.Name
	}
	doc := &models.Doctor{
		ID:            uuid.New().String(),
		UserID:        in.UserID,
		Name:          name,
		ProfilePic:    in.ProfilePic,
		Speciality:    in.Speciality,
		Qualification: in.Qualification,
		Overview:      in.Overview,
		Expertise:     in.Expertise,
	}
	if doc.Expertise == nil {
		doc.Expertise = []string{}
	}
	if err := s.Doctors.Create(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDoctorExists
		}
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	s.logger().Info("Doctor added", zap.String("doctorID", doc.ID), zap.String("userID", doc.UserID))
	return doc, nil
}

func (s *DefaultDoctorService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.Doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

func (s *DefaultDoctorService) GetDoctorByUserID(ctx context.Context, userID string) (*models.Doctor, error) {
	doc, err := s.Doctors.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return doc, nil
}

// UpdateDoctor overwrites only the non-empty fields of in.
func (s *DefaultDoctorService) UpdateDoctor(ctx context.Context, id string, in models.DoctorInput) (*models.Doctor, error) {
	doc, err := s.Doctors.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	if in.Name != "" {
		doc.Name = in.Name
	}
	if in.ProfilePic != "" {
		doc.ProfilePic = in.ProfilePic
	}
	if in.Speciality != "" {
		doc.Speciality = in.Speciality
	}
	if in.Qualification != "" {
		doc.Qualification = in.Qualification
	}
	if in.Overview != "" {
		doc.Overview = in.Overview
	}
	if len(in.Expertise) > 0 {
		doc.Expertise = in.Expertise
	}

	if err := s.Doctors.Update(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("update doctor: %w", err)
	}
	return doc, nil
}

func (s *DefaultDoctorService) DeleteDoctor(ctx context.Context, id string) error {
	err := s.Doctors.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDoctorNotFound
	}
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	s.logger().Info("Doctor deleted", zap.String("doctorID", id))
	return nil
}
