package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/counter"
	"github.com/qs3c/uikit_server/internal/pkg/oss"
	"github.com/qs3c/uikit_server/internal/pkg/pubsub"
	"github.com/qs3c/uikit_server/internal/repository"
)

var ErrComponentNotFound = errors.New("组件不存在")

const maxPreviewSize = 5 * 1024 * 1024 // 5MB

type ComponentService struct {
	componentRepo *repository.ComponentRepository
	favoriteRepo  *repository.FavoriteRepository
	subRepo       *repository.SubscriptionRepository
	viewCounter   *counter.Counter
	publisher     *pubsub.Publisher
	ossClient     *oss.Client
}

func NewComponentService(
	componentRepo *repository.ComponentRepository,
	favoriteRepo *repository.FavoriteRepository,
	subRepo *repository.SubscriptionRepository,
	viewCounter *counter.Counter,
	publisher *pubsub.Publisher,
	ossClient *oss.Client,
) *ComponentService {
	return &ComponentService{
		componentRepo: componentRepo,
		favoriteRepo:  favoriteRepo,
		subRepo:       subRepo,
		viewCounter:   viewCounter,
		publisher:     publisher,
		ossClient:     ossClient,
	}
}

// List 分页获取组件列表。源码字段按订阅状态裁剪
func (s *ComponentService) List(userID int64, req *dto.ListComponentsRequest) ([]*dto.ComponentInfo, int64, error) {
	components, total, err := s.componentRepo.List(req.Page, req.PageSize, req.Category, req.Search)
	if err != nil {
		return nil, 0, err
	}

	entitled := s.isEntitled(userID)

	infos := make([]*dto.ComponentInfo, 0, len(components))
	for _, c := range components {
		info := s.buildComponentInfo(c, userID, entitled)
		infos = append(infos, info)
	}
	return infos, total, nil
}

// Get 获取组件详情并记录一次浏览
func (s *ComponentService) Get(ctx context.Context, userID, componentID int64) (*dto.ComponentInfo, error) {
	component, err := s.componentRepo.GetByID(componentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}

	entitled := s.isEntitled(userID)

	s.recordView(ctx, component)

	return s.buildComponentInfo(component, userID, entitled), nil
}

// ListCategories 获取全部组件分类
func (s *ComponentService) ListCategories() ([]string, error) {
	return s.componentRepo.ListCategories()
}

// Create 创建组件（管理员）
func (s *ComponentService) Create(req *dto.CreateComponentRequest) (*dto.ComponentInfo, error) {
	component := &model.Component{
		Name:        req.Name,
		Category:    req.Category,
		Color:       req.Color,
		CSSContent:  req.CSSContent,
		HTMLContent: req.HTMLContent,
	}
	if err := s.componentRepo.Create(component); err != nil {
		return nil, err
	}
	return s.buildComponentInfo(component, 0, true), nil
}

// Update 更新组件（管理员）
func (s *ComponentService) Update(id int64, req *dto.UpdateComponentRequest) (*dto.ComponentInfo, error) {
	component, err := s.componentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		component.Name = *req.Name
	}
	if req.Category != nil {
		component.Category = *req.Category
	}
	if req.Color != nil {
		component.Color = *req.Color
	}
	if req.CSSContent != nil {
		component.CSSContent = *req.CSSContent
	}
	if req.HTMLContent != nil {
		component.HTMLContent = *req.HTMLContent
	}

	if err := s.componentRepo.Update(component); err != nil {
		return nil, err
	}
	return s.buildComponentInfo(component, 0, true), nil
}

// Delete 删除组件（管理员）
func (s *ComponentService) Delete(id int64) error {
	if _, err := s.componentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComponentNotFound
		}
		return err
	}
	return s.componentRepo.Delete(id)
}

// UploadPreview 上传组件预览图（管理员）
func (s *ComponentService) UploadPreview(id int64, filename string, size int64, file io.Reader) (*dto.ComponentInfo, error) {
	component, err := s.componentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComponentNotFound
		}
		return nil, err
	}

	ext := filepath.Ext(filename)
	if !isImageExt(ext) {
		return nil, ErrInvalidFileType
	}
	if size > maxPreviewSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPreviewSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxPreviewSize {
		return nil, ErrFileTooLarge
	}

	url, err := s.ossClient.UploadPreview(id, data, ext)
	if err != nil {
		return nil, err
	}

	component.PreviewURL = url
	if err := s.componentRepo.Update(component); err != nil {
		return nil, err
	}
	return s.buildComponentInfo(component, 0, true), nil
}

// isEntitled 判断用户能否查看组件源码。
// 查询失败按未订阅处理，不把源码泄露给状态未知的请求
func (s *ComponentService) isEntitled(userID int64) bool {
	if userID == 0 {
		return false
	}
	has, err := s.subRepo.HasActive(userID, time.Now())
	if err != nil {
		log.Printf("Failed to check subscription for user %d: %v", userID, err)
		return false
	}
	return has
}

// recordView 累加浏览计数并推送后台事件，计数失败不影响详情返回
func (s *ComponentService) recordView(ctx context.Context, component *model.Component) {
	if err := s.componentRepo.IncrementViewCount(component.ID); err == nil {
		component.ViewCount++
	}

	if s.viewCounter != nil {
		day := time.Now().Format("2006-01-02")
		_ = s.viewCounter.IncrView(ctx, component.ID, day)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, &pubsub.Event{
			Type:        pubsub.EventComponentView,
			ComponentID: component.ID,
		})
	}
}

func (s *ComponentService) buildComponentInfo(c *model.Component, userID int64, entitled bool) *dto.ComponentInfo {
	info := &dto.ComponentInfo{
		ID:         c.ID,
		Name:       c.Name,
		Category:   c.Category,
		Color:      c.Color,
		PreviewURL: c.PreviewURL,
		ViewCount:  c.ViewCount,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}

	if entitled {
		css := c.CSSContent
		html := c.HTMLContent
		info.CSSContent = &css
		info.HTMLContent = &html
	} else {
		info.RequiresSubscription = true
	}

	if userID > 0 {
		favorited, err := s.favoriteRepo.Exists(userID, c.ID)
		if err == nil {
			info.IsFavorited = favorited
		}
	}

	return info
}
