package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/repository"
)

var ErrSettingNotFound = errors.New("配置项不存在")

type SettingService struct {
	settingRepo *repository.SettingRepository
}

func NewSettingService(settingRepo *repository.SettingRepository) *SettingService {
	return &SettingService{settingRepo: settingRepo}
}

// Get 获取单个配置项
func (s *SettingService) Get(section, key string) (*dto.SettingInfo, error) {
	setting, err := s.settingRepo.Get(section, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return buildSettingInfo(setting), nil
}

// Upsert 写入配置项，已存在时原地更新
func (s *SettingService) Upsert(req *dto.UpsertSettingRequest) (*dto.SettingInfo, error) {
	setting := &model.Setting{
		Section: req.Section,
		Key:     req.Key,
		Value:   req.Value,
	}
	if err := s.settingRepo.Upsert(setting); err != nil {
		return nil, err
	}

	// Upsert 走 ON CONFLICT，回读拿到真实时间戳
	stored, err := s.settingRepo.Get(req.Section, req.Key)
	if err != nil {
		return nil, err
	}
	return buildSettingInfo(stored), nil
}

// Delete 删除配置项
func (s *SettingService) Delete(section, key string) error {
	if _, err := s.settingRepo.Get(section, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSettingNotFound
		}
		return err
	}
	return s.settingRepo.Delete(section, key)
}

// ListBySection 获取某个 section 下的全部配置
func (s *SettingService) ListBySection(section string) ([]*dto.SettingInfo, error) {
	settings, err := s.settingRepo.ListBySection(section)
	if err != nil {
		return nil, err
	}
	return buildSettingInfos(settings), nil
}

// ListAll 获取全部配置
func (s *SettingService) ListAll() ([]*dto.SettingInfo, error) {
	settings, err := s.settingRepo.ListAll()
	if err != nil {
		return nil, err
	}
	return buildSettingInfos(settings), nil
}

func buildSettingInfo(setting *model.Setting) *dto.SettingInfo {
	return &dto.SettingInfo{
		Section:   setting.Section,
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt.Format(time.RFC3339),
	}
}

func buildSettingInfos(settings []*model.Setting) []*dto.SettingInfo {
	infos := make([]*dto.SettingInfo, 0, len(settings))
	for _, s := range settings {
		infos = append(infos, buildSettingInfo(s))
	}
	return infos
}
