package server

import (
	"bloxmarket/internal/models"
	"bloxmarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyWishlist handles GET /api/wishlist
func (s *Server) GetMyWishlist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	items, err := s.wishlistService.ListItems(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": items,
	})
}

// GetUserWishlist handles GET /api/users/:id/wishlist
func (s *Server) GetUserWishlist(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	items, err := s.wishlistService.ListItems(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": items,
	})
}

// CreateWishlistItem handles POST /api/wishlist
func (s *Server) CreateWishlistItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		ItemName string `json:"item_name"`
		Note     string `json:"note"`
		Priority int    `json:"priority"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.wishlistService.CreateItem(c.Context(), service.CreateWishlistItemInput{
		UserID:   userID,
		ItemName: req.ItemName,
		Note:     req.Note,
		Priority: req.Priority,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateWishlistItem handles PATCH /api/wishlist/:itemId
func (s *Server) UpdateWishlistItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	var req struct {
		ItemName string `json:"item_name"`
		Note     string `json:"note"`
		Priority *int   `json:"priority"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	item, err := s.wishlistService.UpdateItem(c.Context(), service.UpdateWishlistItemInput{
		UserID:   userID,
		ItemID:   itemID,
		ItemName: req.ItemName,
		Note:     req.Note,
		Priority: req.Priority,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(item)
}

// DeleteWishlistItem handles DELETE /api/wishlist/:itemId
func (s *Server) DeleteWishlistItem(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	itemID, err := s.parseID(c, "itemId")
	if err != nil {
		return nil
	}

	if err := s.wishlistService.DeleteItem(c.Context(), userID, itemID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Wishlist item deleted",
	})
}
