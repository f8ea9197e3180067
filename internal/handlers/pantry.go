package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/calloway/larder/internal/database"
	"github.com/calloway/larder/internal/engine"
	"github.com/calloway/larder/internal/middleware"
	"github.com/calloway/larder/internal/models"
)

// BulkAddResult summarizes a deduplicated merge into the pantry
type BulkAddResult struct {
	Added             []models.PantryItem `json:"added"`
	Merged            []models.PantryItem `json:"merged"`
	TotalBeforeDedup  int                 `json:"total_before_dedup"`
	TotalAfterDedup   int                 `json:"total_after_dedup"`
	DuplicatesRemoved int                 `json:"duplicates_removed"`
}

// GetPantryItems returns the user's pantry
func (h *Handler) GetPantryItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	items, err := h.db.ListPantryItems(c.Context(), userID)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list pantry items")
	}
	if items == nil {
		items = []models.PantryItem{}
	}

	return Success(c, items)
}

// GetPantryItem returns a single pantry item
func (h *Handler) GetPantryItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	item, err := h.db.GetPantryItemByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrPantryItemNotFound) {
			return Error(c, fiber.StatusNotFound, "pantry item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get pantry item")
	}

	return Success(c, item)
}

// CreatePantryItem adds a single item to the pantry
func (h *Handler) CreatePantryItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreatePantryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return Error(c, fiber.StatusBadRequest, "quantity cannot be negative")
	}
	if !req.Category.IsValid() {
		req.Category = engine.Categorize(req.Name)
	}

	item, err := h.db.CreatePantryItem(c.Context(), userID, &req)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to create pantry item")
	}

	h.recorder.Record(models.PurchaseEvent{
		UserID:    userID,
		ItemName:  item.Name,
		EventType: models.EventAdded,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
	})

	return c.Status(fiber.StatusCreated).JSON(APIResponse{Success: true, Data: item})
}

// UpdatePantryItem updates a pantry item
func (h *Handler) UpdatePantryItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req models.UpdatePantryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		return Error(c, fiber.StatusBadRequest, "quantity cannot be negative")
	}
	if req.Category != nil && !req.Category.IsValid() {
		return Error(c, fiber.StatusBadRequest, "invalid category")
	}

	item, err := h.db.UpdatePantryItem(c.Context(), id, userID, &req)
	if err != nil {
		if errors.Is(err, database.ErrPantryItemNotFound) {
			return Error(c, fiber.StatusNotFound, "pantry item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update pantry item")
	}

	return Success(c, item)
}

// DeletePantryItem removes a pantry item
func (h *Handler) DeletePantryItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	id, err := c.ParamsInt("id")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	item, err := h.db.GetPantryItemByID(c.Context(), id, userID)
	if err != nil {
		if errors.Is(err, database.ErrPantryItemNotFound) {
			return Error(c, fiber.StatusNotFound, "pantry item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to get pantry item")
	}

	if err := h.db.DeletePantryItem(c.Context(), id, userID); err != nil {
		if errors.Is(err, database.ErrPantryItemNotFound) {
			return Error(c, fiber.StatusNotFound, "pantry item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to delete pantry item")
	}

	h.recorder.Record(models.PurchaseEvent{
		UserID:    userID,
		ItemName:  item.Name,
		EventType: models.EventRemoved,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
	})

	return Success(c, fiber.Map{"deleted": true})
}

// BulkAddPantryItems deduplicates item batches from one or more scan
// sources and merges them into the pantry
func (h *Handler) BulkAddPantryItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.BulkAddRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Sources) == 0 {
		return Error(c, fiber.StatusBadRequest, "at least one source is required")
	}

	result, err := h.mergeIntoPantry(c, userID, req.Sources)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to add items to pantry")
	}

	return Success(c, result)
}

// GetExpiringItems returns pantry items expiring within a window,
// default 3 days
func (h *Handler) GetExpiringItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	days := c.QueryInt("days", 3)
	if days < 0 {
		return Error(c, fiber.StatusBadRequest, "days cannot be negative")
	}

	items, err := h.db.GetExpiringPantryItems(c.Context(), userID, days)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list expiring items")
	}
	if items == nil {
		items = []models.PantryItem{}
	}

	return Success(c, items)
}

// mergeIntoPantry runs the deduplicator over the sources and folds the
// result into existing stock: a merged item fuzzily matching an
// existing pantry item tops up its quantity, anything else becomes a
// new item with a categorizer category and a shelf-life default expiry.
func (h *Handler) mergeIntoPantry(c *fiber.Ctx, userID int, sources []models.ScanSource) (*BulkAddResult, error) {
	dedup := engine.DeduplicateItems(sources)

	existing, err := h.db.ListPantryItems(c.Context(), userID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(existing))
	for i, it := range existing {
		names[i] = it.Name
	}

	result := &BulkAddResult{
		Added:             []models.PantryItem{},
		Merged:            []models.PantryItem{},
		TotalBeforeDedup:  dedup.TotalBeforeDedup,
		TotalAfterDedup:   dedup.TotalAfterDedup,
		DuplicatesRemoved: dedup.DuplicatesRemoved,
	}

	for _, item := range dedup.Items {
		if item.Name == "" {
			continue
		}

		if idx := engine.FindBestMatch(item.Name, names); idx >= 0 {
			updated, err := h.db.AddToPantryQuantity(c.Context(), existing[idx].ID, userID, item.Quantity)
			if err != nil {
				return nil, err
			}
			result.Merged = append(result.Merged, *updated)
		} else {
			category := item.Category
			if !category.IsValid() {
				category = engine.Categorize(item.Name)
			}
			expiry := item.ExpiryDate
			if expiry == nil {
				if days, ok := engine.DefaultExpiryDays(item.Name, category); ok {
					d := time.Now().AddDate(0, 0, days)
					expiry = &d
				}
			}
			qty := item.Quantity
			created, err := h.db.CreatePantryItem(c.Context(), userID, &models.CreatePantryItemRequest{
				Name:       item.Name,
				Quantity:   &qty,
				Unit:       item.Unit,
				Category:   category,
				ExpiryDate: expiry,
			})
			if err != nil {
				return nil, err
			}
			result.Added = append(result.Added, *created)
		}

		qty := item.Quantity
		h.recorder.Record(models.PurchaseEvent{
			UserID:    userID,
			ItemName:  item.Name,
			EventType: models.EventAdded,
			Quantity:  &qty,
			Unit:      item.Unit,
		})
	}

	return result, nil
}
