package server

import (
	"forum/internal/middleware"
	"forum/internal/models"
	"forum/internal/serializer"
	"forum/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListBoards handles GET /api/boards
func (s *Server) ListBoards(c *fiber.Ctx) error {
	boards, err := s.boardService.List(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Boards(boards))
}

// GetBoard handles GET /api/boards/:id
func (s *Server) GetBoard(c *fiber.Ctx) error {
	id, err := parseID(c, "Board")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	board, err := s.boardService.Get(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Board(board))
}

// CreateBoard handles POST /api/boards
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	var in service.BoardInput
	if err := bindJSON(c, &in); err != nil {
		return models.RespondWithError(c, err)
	}

	board, err := s.boardService.Create(c.UserContext(), middleware.CallerFrom(c), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(serializer.Board(board))
}

// UpdateBoard handles PUT /api/boards/:id
func (s *Server) UpdateBoard(c *fiber.Ctx) error {
	return s.updateBoard(c, false)
}

// PartialUpdateBoard handles PATCH /api/boards/:id
func (s *Server) PartialUpdateBoard(c *fiber.Ctx) error {
	return s.updateBoard(c, true)
}

func (s *Server) updateBoard(c *fiber.Ctx, partial bool) error {
	id, err := parseID(c, "Board")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	var in service.BoardInput
	if err := bindJSON(c, &in); err != nil {
		return models.RespondWithError(c, err)
	}

	board, err := s.boardService.Update(c.UserContext(), middleware.CallerFrom(c), id, in, partial)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(serializer.Board(board))
}

// DeleteBoard handles DELETE /api/boards/:id. The board's posts go with it.
func (s *Server) DeleteBoard(c *fiber.Ctx) error {
	id, err := parseID(c, "Board")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.boardService.Delete(c.UserContext(), middleware.CallerFrom(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
