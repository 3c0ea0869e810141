package models

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginUser struct {
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

type AuthResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type CreateArticleRequest struct {
	Title   string     `json:"title" validate:"required,min=1,max=255"`
	Slug    string     `json:"slug"`
	Content string     `json:"content"`
	Type    string     `json:"type" validate:"required"`
	Author  string     `json:"author" validate:"required"`
	Tags    []string   `json:"tags"`
	Date    *time.Time `json:"date"`
}

// UpdateArticleRequest uses pointers so an omitted field can be told apart
// from an explicit empty value. A nil Tags leaves the article's tags alone;
// an empty slice clears them.
type UpdateArticleRequest struct {
	Title   *string    `json:"title"`
	Slug    *string    `json:"slug"`
	Content *string    `json:"content"`
	Type    *string    `json:"type"`
	Author  *string    `json:"author"`
	Tags    *[]string  `json:"tags"`
	Date    *time.Time `json:"date"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Password string   `json:"password"`
	Role     UserRole `json:"role" validate:"required"`
}

type ArticleListParams struct {
	Type  string `form:"type"`
	Tag   string `form:"tag"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=20"`
}
