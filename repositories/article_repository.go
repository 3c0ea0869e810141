package repositories

import (
	"portfolio-blog-api/models"

	"gorm.io/gorm"
)

// ArticleFilter is the document filter produced by the service layer's
// filter builder: an optional exact type match, an optional tag-id set
// (OR semantics), plus skip/limit pagination.
type ArticleFilter struct {
	Type   string
	TagIDs []uint
	Offset int
	Limit  int
}

type ArticleRepository interface {
	Create(article *models.Article, tagIDs []uint) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	GetList(filter ArticleFilter) ([]models.Article, error)
	Update(article *models.Article, tagIDs *[]uint) error
	Delete(id uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		return replaceTags(tx, article.ID, tagIDs)
	})
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadTags([]*models.Article{&article}); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	if err := r.loadTags([]*models.Article{&article}); err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) GetList(filter ArticleFilter) ([]models.Article, error) {
	var articles []models.Article

	query := r.db.Model(&models.Article{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if len(filter.TagIDs) > 0 {
		// Subquery instead of a join so an article matching several of the
		// requested tags comes back once.
		sub := r.db.Model(&models.ArticleTag{}).
			Select("article_id").
			Where("tag_id IN ?", filter.TagIDs)
		query = query.Where("id IN (?)", sub)
	}

	err := query.Order("date desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Article, len(articles))
	for i := range articles {
		refs[i] = &articles[i]
	}
	if err := r.loadTags(refs); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) Update(article *models.Article, tagIDs *[]uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if tagIDs == nil {
			return nil
		}
		return replaceTags(tx, article.ID, *tagIDs)
	})
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

// replaceTags rewrites the join rows for an article, keeping client order
// and positional duplicates.
func replaceTags(tx *gorm.DB, articleID uint, tagIDs []uint) error {
	if err := tx.Where("article_id = ?", articleID).Delete(&models.ArticleTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}

	joins := make([]models.ArticleTag, len(tagIDs))
	for i, tagID := range tagIDs {
		joins[i] = models.ArticleTag{
			ArticleID: articleID,
			TagID:     tagID,
			Position:  i,
		}
	}
	return tx.Create(&joins).Error
}

// loadTags batch-populates the Tags field for a set of articles, ordered by
// join position. Articles without tags get an empty slice so they serialize
// as [] rather than null.
func (r *articleRepository) loadTags(articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	articleIDs := make([]uint, len(articles))
	for i, a := range articles {
		articleIDs[i] = a.ID
	}

	var joins []models.ArticleTag
	if err := r.db.Where("article_id IN ?", articleIDs).
		Order("article_id, position").
		Find(&joins).Error; err != nil {
		return err
	}

	tagIDSet := make(map[uint]struct{})
	for _, j := range joins {
		tagIDSet[j.TagID] = struct{}{}
	}

	tagsByID := make(map[uint]models.Tag, len(tagIDSet))
	if len(tagIDSet) > 0 {
		tagIDs := make([]uint, 0, len(tagIDSet))
		for id := range tagIDSet {
			tagIDs = append(tagIDs, id)
		}
		var tags []models.Tag
		if err := r.db.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return err
		}
		for _, t := range tags {
			tagsByID[t.ID] = t
		}
	}

	tagsByArticle := make(map[uint][]models.Tag)
	for _, j := range joins {
		if tag, ok := tagsByID[j.TagID]; ok {
			tagsByArticle[j.ArticleID] = append(tagsByArticle[j.ArticleID], tag)
		}
	}

	for _, a := range articles {
		if tags, ok := tagsByArticle[a.ID]; ok {
			a.Tags = tags
		} else {
			a.Tags = []models.Tag{}
		}
	}

	return nil
}
