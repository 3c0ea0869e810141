package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	locale "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio-blog-api/config"
	"portfolio-blog-api/helper"
	"portfolio-blog-api/middleware"
	"portfolio-blog-api/models"
	"portfolio-blog-api/repositories"
	"portfolio-blog-api/services"
)

const testSecret = "test-secret"

type APISuite struct {
	suite.Suite
	router      *gin.Engine
	userService services.UserService
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(s.T().Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(config.Migrate(db))

	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	typeRepo := repositories.NewTypeRepository(db)

	authService := services.NewAuthService(userRepo, []byte(testSecret), time.Hour)
	s.userService = services.NewUserService(userRepo)
	tagService := services.NewTagService(tagRepo)
	typeService := services.NewTypeService(typeRepo)
	articleService := services.NewArticleService(articleRepo, tagService)

	s.Require().NoError(s.userService.EnsureAdmin("admin", "secret123"))
	_, err = s.userService.CreateUser(models.CreateUserRequest{
		Username: "editor",
		Password: "secret123",
		Role:     models.RoleEditor,
	})
	s.Require().NoError(err)

	en := locale.New()
	uni := ut.New(en, en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	s.Require().NoError(entranslations.RegisterDefaultTranslations(validate, translator))
	httpHelper := helper.NewHTTPHelper(validate, translator, zap.NewNop(), true)

	authHandler := NewAuthHandler(authService, httpHelper)
	articleHandler := NewArticleHandler(articleService, httpHelper)
	tagHandler := NewTagHandler(tagService, httpHelper)
	typeHandler := NewTypeHandler(typeService, httpHelper)
	userHandler := NewUserHandler(s.userService, httpHelper)
	uploadHandler := NewUploadHandler(s.T().TempDir(), "", httpHelper)

	secret := []byte(testSecret)
	authn := middleware.AuthMiddleware(secret)
	adminOnly := middleware.RequireRole("admin")
	adminOrEditor := middleware.RequireRole("admin", "editor")

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/:slug", articleHandler.GetArticleBySlug)
			articles.POST("", authn, adminOrEditor, articleHandler.CreateArticle)
			articles.PUT("/:id", authn, adminOrEditor, articleHandler.UpdateArticle)
			articles.DELETE("/:id", authn, adminOnly, articleHandler.DeleteArticle)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.GetTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.POST("", authn, adminOrEditor, tagHandler.CreateTag)
			tags.PUT("/:id", authn, adminOrEditor, tagHandler.UpdateTag)
			tags.DELETE("/:id", authn, adminOnly, tagHandler.DeleteTag)
		}

		types := api.Group("/types")
		{
			types.GET("", typeHandler.GetTypes)
			types.POST("", authn, adminOrEditor, typeHandler.CreateType)
		}

		users := api.Group("/users", authn, adminOnly)
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
		}

		api.POST("/upload/image", authn, adminOnly, uploadHandler.UploadImage)
	}

	s.router = router
}

func (s *APISuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.T().Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) login(username, password string) string {
	s.T().Helper()

	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (s *APISuite) TestLoginInvalidCredentials() {
	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "Invalid credentials")
}

func (s *APISuite) TestArticleEndToEnd() {
	token := s.login("admin", "secret123")

	w := s.request(http.MethodPost, "/api/articles", token, gin.H{
		"title":  "Test Post",
		"type":   "tech",
		"author": "A",
		"tags":   []string{"go", "rust"},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created models.Article
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("test-post", created.Slug)
	s.Require().Len(created.Tags, 2)
	s.Equal("go", created.Tags[0].Name)
	s.Equal("rust", created.Tags[1].Name)

	w = s.request(http.MethodGet, "/api/articles/test-post", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var fetched models.Article
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &fetched))
	s.Equal(created.ID, fetched.ID)
	s.Len(fetched.Tags, 2)

	w = s.request(http.MethodGet, "/api/tags", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tags []models.Tag
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tags))
	s.Len(tags, 2)
}

func (s *APISuite) TestCreateArticleRequiresToken() {
	w := s.request(http.MethodPost, "/api/articles", "", gin.H{
		"title": "Nope", "type": "tech", "author": "A",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestCreateArticleValidation() {
	token := s.login("editor", "secret123")

	w := s.request(http.MethodPost, "/api/articles", token, gin.H{
		"type": "tech", "author": "A",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "message")
}

func (s *APISuite) TestDeleteArticleRequiresAdmin() {
	adminToken := s.login("admin", "secret123")
	editorToken := s.login("editor", "secret123")

	w := s.request(http.MethodPost, "/api/articles", editorToken, gin.H{
		"title": "Victim", "type": "tech", "author": "A",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	var article models.Article
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &article))

	path := "/api/articles/" + strconv.Itoa(int(article.ID))

	w = s.request(http.MethodDelete, path, editorToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, path, adminToken, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Article deleted successfully")

	w = s.request(http.MethodDelete, path, adminToken, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestUnknownSlugNotFound() {
	w := s.request(http.MethodGet, "/api/articles/no-such-post", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Contains(w.Body.String(), "Article not found")
}

func (s *APISuite) TestEmptyListIsArray() {
	w := s.request(http.MethodGet, "/api/articles", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("[]", strings.TrimSpace(w.Body.String()))
}

func (s *APISuite) TestUserRoutesAdminOnly() {
	editorToken := s.login("editor", "secret123")

	w := s.request(http.MethodGet, "/api/users", editorToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	adminToken := s.login("admin", "secret123")
	w = s.request(http.MethodGet, "/api/users", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "password")
}

func (s *APISuite) TestUploadImage() {
	token := s.login("admin", "secret123")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "photo.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("not-really-a-png"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp map[string]string
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Contains(resp["url"], "/uploads/")
	s.True(strings.HasSuffix(resp["url"], ".png"))
}

func (s *APISuite) TestUploadRejectsUnsupportedExtension() {
	token := s.login("admin", "secret123")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "script.sh")
	s.Require().NoError(err)
	_, err = part.Write([]byte("#!/bin/sh"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
