package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/repository"
)

var ErrPlanNotFound = errors.New("套餐不存在")

type PlanService struct {
	planRepo *repository.PlanRepository
}

func NewPlanService(planRepo *repository.PlanRepository) *PlanService {
	return &PlanService{planRepo: planRepo}
}

// ListActive 获取可售套餐列表（按价格升序）
func (s *PlanService) ListActive() ([]*dto.PlanInfo, error) {
	plans, err := s.planRepo.ListActive()
	if err != nil {
		return nil, err
	}
	return buildPlanInfos(plans), nil
}

// ListAll 获取全部套餐（管理后台）
func (s *PlanService) ListAll() ([]*dto.PlanInfo, error) {
	plans, err := s.planRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return buildPlanInfos(plans), nil
}

// Get 获取单个套餐
func (s *PlanService) Get(id int64) (*dto.PlanInfo, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return buildPlanInfo(plan), nil
}

// Create 创建套餐（管理员）
func (s *PlanService) Create(req *dto.CreatePlanRequest) (*dto.PlanInfo, error) {
	plan := &model.Plan{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		IsActive:     true,
	}
	plan.SetFeatures(req.Features)
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return buildPlanInfo(plan), nil
}

// Update 更新套餐（管理员）。已购订阅不受影响
func (s *PlanService) Update(id int64, req *dto.UpdatePlanRequest) (*dto.PlanInfo, error) {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationDays != nil {
		plan.DurationDays = *req.DurationDays
	}
	if req.Features != nil {
		plan.SetFeatures(req.Features)
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return buildPlanInfo(plan), nil
}

// Deactivate 下架套餐（管理员）。不做物理删除，避免破坏历史订阅
func (s *PlanService) Deactivate(id int64) error {
	plan, err := s.planRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	plan.IsActive = false
	plan.UpdatedAt = time.Now()
	return s.planRepo.Update(plan)
}

func buildPlanInfo(plan *model.Plan) *dto.PlanInfo {
	features := plan.FeatureList()
	if features == nil {
		features = []string{}
	}
	return &dto.PlanInfo{
		ID:           plan.ID,
		Name:         plan.Name,
		Description:  plan.Description,
		Price:        plan.Price,
		DurationDays: plan.DurationDays,
		Features:     features,
		IsActive:     plan.IsActive,
	}
}

func buildPlanInfos(plans []*model.Plan) []*dto.PlanInfo {
	infos := make([]*dto.PlanInfo, 0, len(plans))
	for _, p := range plans {
		infos = append(infos, buildPlanInfo(p))
	}
	return infos
}
