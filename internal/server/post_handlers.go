package server

import (
	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/serializer"
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/posts?board=&author=&author_username=&search=&ordering=&page=&page_size=
func (s *Server) ListPosts(c *fiber.Ctx) error {
	list, err := s.postService.List(c.UserContext(), c.Queries())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.PostPage(list))
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Post(post))
}

// CreatePost handles POST /api/posts. The caller becomes the author.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in service.PostInput
	if err := bindJSON(c, &in); err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.Create(c.UserContext(), middleware.CallerFrom(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(serializer.Post(post))
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	return s.updatePost(c, false)
}

// PartialUpdatePost handles PATCH /api/posts/:id
func (s *Server) PartialUpdatePost(c *fiber.Ctx) error {
	return s.updatePost(c, true)
}

func (s *Server) updatePost(c *fiber.Ctx, partial bool) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var in service.PostInput
	if err := bindJSON(c, &in); err != nil {
		return models.RespondWithError(c, err)
	}

	post, err := s.postService.Update(c.UserContext(), middleware.CallerFrom(c), id, in, partial)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Post(post))
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.Delete(c.UserContext(), middleware.CallerFrom(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// IncrementViews handles POST /api/posts/:id/increment_views
func (s *Server) IncrementViews(c *fiber.Ctx) error {
	id, err := parseID(c, "Post")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	views, err := s.postService.IncrementViews(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Views(views))
}
