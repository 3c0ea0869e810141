package services

import (
	"errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"portfolio-blog-api/helper"
	"portfolio-blog-api/models"
	"portfolio-blog-api/repositories"
)

const defaultPageSize = 20

type ArticleService interface {
	GetArticles(params models.ArticleListParams) ([]models.Article, error)
	GetArticleBySlug(slug string) (*models.Article, error)
	CreateArticle(req models.CreateArticleRequest) (*models.Article, error)
	UpdateArticle(id uint, req models.UpdateArticleRequest) (*models.Article, error)
	DeleteArticle(id uint) error
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	tagService  TagService
	sanitizer   *bluemonday.Policy
}

func NewArticleService(articleRepo repositories.ArticleRepository, tagService TagService) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		tagService:  tagService,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *articleService) GetArticles(params models.ArticleListParams) ([]models.Article, error) {
	filter, matchNothing, err := s.buildFilter(params)
	if err != nil {
		return nil, err
	}
	if matchNothing {
		return []models.Article{}, nil
	}

	articles, err := s.articleRepo.GetList(filter)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error fetching articles", Err: err}
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

// buildFilter translates list query parameters into a store filter plus
// skip/limit. When tag tokens were supplied but none resolve to a known tag,
// matchNothing is true and the caller must return an empty result instead of
// silently dropping the tag filter.
func (s *articleService) buildFilter(params models.ArticleListParams) (filter repositories.ArticleFilter, matchNothing bool, err error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageSize
	}

	filter = repositories.ArticleFilter{
		Type:   strings.TrimSpace(params.Type),
		Offset: (page - 1) * limit,
		Limit:  limit,
	}

	tokens := splitTagTokens(params.Tag)
	if len(tokens) == 0 {
		return filter, false, nil
	}

	tags, err := s.tagService.ResolveTags(tokens, false)
	if err != nil {
		return filter, false, err
	}
	if len(tags) == 0 {
		return filter, true, nil
	}

	tagIDs := make([]uint, len(tags))
	for i, tag := range tags {
		tagIDs[i] = tag.ID
	}
	filter.TagIDs = tagIDs

	return filter, false, nil
}

func splitTagTokens(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

func (s *articleService) GetArticleBySlug(slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Article not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching article", Err: err}
	}
	return article, nil
}

func (s *articleService) CreateArticle(req models.CreateArticleRequest) (*models.Article, error) {
	title := strings.TrimSpace(req.Title)
	articleType := strings.TrimSpace(req.Type)
	author := strings.TrimSpace(req.Author)
	if title == "" || articleType == "" || author == "" {
		return nil, models.ErrorValidation{Message: "Title, type and author are required"}
	}

	slug, err := resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagService.ResolveTags(req.Tags, true)
	if err != nil {
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	article := &models.Article{
		Title:   title,
		Slug:    slug,
		Content: s.sanitizer.Sanitize(req.Content),
		Type:    articleType,
		Author:  author,
		Date:    date,
	}

	if err := s.articleRepo.Create(article, tagIDsOf(tags)); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Slug already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error creating article", Err: err}
	}

	return s.reload(article.ID)
}

func (s *articleService) UpdateArticle(id uint, req models.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Article not found"}
		}
		return nil, models.ErrorInternalServer{Message: "Error fetching article", Err: err}
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.ErrorValidation{Message: "Title cannot be empty"}
		}
		article.Title = title
	}
	if req.Type != nil {
		articleType := strings.TrimSpace(*req.Type)
		if articleType == "" {
			return nil, models.ErrorValidation{Message: "Type cannot be empty"}
		}
		article.Type = articleType
	}
	if req.Author != nil {
		author := strings.TrimSpace(*req.Author)
		if author == "" {
			return nil, models.ErrorValidation{Message: "Author cannot be empty"}
		}
		article.Author = author
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if slug == "" {
			slug = helper.Slugify(article.Title)
		}
		if !helper.IsValidSlug(slug) {
			return nil, models.ErrorValidation{Message: "Invalid slug"}
		}
		article.Slug = slug
	}
	if req.Content != nil {
		article.Content = s.sanitizer.Sanitize(*req.Content)
	}
	if req.Date != nil {
		article.Date = *req.Date
	}

	var tagIDs *[]uint
	if req.Tags != nil {
		tags, err := s.tagService.ResolveTags(*req.Tags, true)
		if err != nil {
			return nil, err
		}
		ids := tagIDsOf(tags)
		tagIDs = &ids
	}

	if err := s.articleRepo.Update(article, tagIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Slug already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "Error updating article", Err: err}
	}

	return s.reload(article.ID)
}

func (s *articleService) DeleteArticle(id uint) error {
	if _, err := s.articleRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "Article not found"}
		}
		return models.ErrorInternalServer{Message: "Error fetching article", Err: err}
	}

	if err := s.articleRepo.Delete(id); err != nil {
		return models.ErrorInternalServer{Message: "Error deleting article", Err: err}
	}
	return nil
}

func (s *articleService) reload(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Error fetching article", Err: err}
	}
	return article, nil
}

// resolveSlug validates an explicit slug or derives one from the title.
func resolveSlug(explicit, title string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug != "" {
		if !helper.IsValidSlug(slug) {
			return "", models.ErrorValidation{Message: "Invalid slug"}
		}
		return slug, nil
	}

	slug = helper.Slugify(title)
	if slug == "" {
		return "", models.ErrorValidation{Message: "Cannot derive a slug from the title"}
	}
	return slug, nil
}

func tagIDsOf(tags []models.Tag) []uint {
	ids := make([]uint, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids
}
