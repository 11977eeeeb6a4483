package service

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/repository"
)

var (
	ErrAlreadyFavorited = errors.New("已收藏过该组件")
	ErrNotFavorited     = errors.New("尚未收藏该组件")
)

type FavoriteService struct {
	favoriteRepo  *repository.FavoriteRepository
	componentRepo *repository.ComponentRepository
	subRepo       *repository.SubscriptionRepository
}

func NewFavoriteService(
	favoriteRepo *repository.FavoriteRepository,
	componentRepo *repository.ComponentRepository,
	subRepo *repository.SubscriptionRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo:  favoriteRepo,
		componentRepo: componentRepo,
		subRepo:       subRepo,
	}
}

// Add 收藏组件
func (s *FavoriteService) Add(userID, componentID int64) error {
	if _, err := s.componentRepo.GetByID(componentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComponentNotFound
		}
		return err
	}

	exists, err := s.favoriteRepo.Exists(userID, componentID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorited
	}

	err = s.favoriteRepo.Create(&model.Favorite{
		UserID:      userID,
		ComponentID: componentID,
	})
	if err != nil {
		// 并发重复收藏落在唯一索引上
		if isDuplicateKeyErr(err) {
			return ErrAlreadyFavorited
		}
		return err
	}
	return nil
}

// Remove 取消收藏
func (s *FavoriteService) Remove(userID, componentID int64) error {
	exists, err := s.favoriteRepo.Exists(userID, componentID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFavorited
	}
	return s.favoriteRepo.Delete(userID, componentID)
}

// List 分页获取收藏的组件。源码字段按订阅状态裁剪
func (s *FavoriteService) List(userID int64, page, pageSize int) ([]*dto.ComponentInfo, int64, error) {
	ids, total, err := s.favoriteRepo.GetUserFavoriteIDs(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return []*dto.ComponentInfo{}, total, nil
	}

	components, err := s.componentRepo.GetByIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	entitled, err := s.subRepo.HasActive(userID, time.Now())
	if err != nil {
		entitled = false
	}

	// 保持收藏时间顺序
	byID := make(map[int64]*model.Component, len(components))
	for _, c := range components {
		byID[c.ID] = c
	}

	infos := make([]*dto.ComponentInfo, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			continue
		}
		info := &dto.ComponentInfo{
			ID:          c.ID,
			Name:        c.Name,
			Category:    c.Category,
			Color:       c.Color,
			PreviewURL:  c.PreviewURL,
			ViewCount:   c.ViewCount,
			IsFavorited: true,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		}
		if entitled {
			css := c.CSSContent
			html := c.HTMLContent
			info.CSSContent = &css
			info.HTMLContent = &html
		} else {
			info.RequiresSubscription = true
		}
		infos = append(infos, info)
	}
	return infos, total, nil
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
