package service

import (
	"context"
	"errors"
	"fmt"
	"jobplus/internal/entity"
	"jobplus/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAlreadyApplied = errors.New("already applied to this job")
	ErrJobOffline     = errors.New("job is offline")
	// ErrDeliveryClosed 投递已被处理，不能再次接受或拒绝。
	ErrDeliveryClosed = errors.New("delivery already processed")
)

// DeliveryDetail 投递记录及其关联对象；关联已被删除时对应字段为 nil。
type DeliveryDetail struct {
	Delivery entity.DbDelivery
	User     *entity.DbUser
	Job      *entity.DbJob
}

// DeliveryService 处理简历投递及企业反馈
type DeliveryService struct {
	repo model.Repository
}

func NewDeliveryService(repo model.Repository) *DeliveryService {
	return &DeliveryService{repo: repo}
}

// Apply records that userID sent a resume to jobID.
func (s *DeliveryService) Apply(ctx context.Context, userID, jobID uint) (*entity.DbDelivery, error) {
	var delivery *entity.DbDelivery
	err := s.repo.WithTx(ctx, func(tx model.Repository) error {
		user, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		if !user.IsActive {
			return ErrUserDisabled
		}

		job, err := tx.GetJobByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("load job: %w", err)
		}
		if !job.Online {
			return ErrJobOffline
		}

		applied, err := tx.HasApplied(ctx, jobID, userID)
		if err != nil {
			return err
		}
		if applied {
			return ErrAlreadyApplied
		}

		delivery = &entity.DbDelivery{
			JobID:     &job.ID,
			UserID:    &user.ID,
			CompanyID: job.CompanyID,
			Status:    entity.DeliveryStatusWaiting,
		}
		return tx.CreateDelivery(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"delivery_id": delivery.ID,
		"user_id":     userID,
		"job_id":      jobID,
	}).Info("resume delivered")
	return delivery, nil
}

// Accept marks a waiting delivery as accepted.
func (s *DeliveryService) Accept(ctx context.Context, id uint, response string) error {
	return s.respond(ctx, id, entity.DeliveryStatusAccepted, response)
}

// Reject marks a waiting delivery as rejected.
func (s *DeliveryService) Reject(ctx context.Context, id uint, response string) error {
	return s.respond(ctx, id, entity.DeliveryStatusRejected, response)
}

func (s *DeliveryService) respond(ctx context.Context, id uint, status entity.DeliveryStatus, response string) error {
	return s.repo.WithTx(ctx, func(tx model.Repository) error {
		delivery, err := tx.GetDelivery(ctx, id)
		if err != nil {
			return err
		}
		if delivery.Status != entity.DeliveryStatusWaiting {
			return ErrDeliveryClosed
		}
		return tx.UpdateDeliveryStatus(ctx, id, status, response)
	})
}

// Detail loads a delivery together with its applicant and job.
func (s *DeliveryService) Detail(ctx context.Context, id uint) (*DeliveryDetail, error) {
	delivery, err := s.repo.GetDelivery(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &DeliveryDetail{Delivery: *delivery}

	if delivery.UserID != nil {
		user, err := s.repo.GetUserByID(ctx, *delivery.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		detail.User = user
	}
	if delivery.JobID != nil {
		job, err := s.repo.GetJobByID(ctx, *delivery.JobID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		detail.Job = job
	}
	return detail, nil
}

// ListForCompany 列出企业收到的投递，status 为 0 时不过滤。
func (s *DeliveryService) ListForCompany(ctx context.Context, companyID uint, status entity.DeliveryStatus, params entity.BaseParams) ([]entity.DbDelivery, *entity.Meta, error) {
	if companyID == 0 {
		return nil, nil, fmt.Errorf("invalid company id")
	}
	return s.repo.ListDeliveries(ctx, &entity.DeliveryQuery{
		BaseParams: params,
		CompanyID:  companyID,
		Status:     status,
	})
}
