package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/model"
	"github.com/advenue/foodadmin/internal/pagination"
	"github.com/advenue/foodadmin/internal/repository"
)

// FoodHandler bundles dependencies for the catalog endpoints.
type FoodHandler struct {
	Cfg        config.Config
	Foods      *repository.FoodRepo
	Categories *repository.CategoryRepo
}

func NewFoodHandler(cfg config.Config, f *repository.FoodRepo, cat *repository.CategoryRepo) *FoodHandler {
	return &FoodHandler{Cfg: cfg, Foods: f, Categories: cat}
}

// queryBool mirrors loose boolean query parameters: "1", "true", "on"
// and "yes" count as true.
func queryBool(c echo.Context, name string) bool {
	switch strings.ToLower(c.QueryParam(name)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func queryInt(c echo.Context, name, def string) int {
	v := c.QueryParam(name)
	if v == "" {
		v = def
	}
	n, _ := strconv.Atoi(v)
	return n
}

// Index handles GET /v1/foods: filtered, sorted, paginated catalog
// listing under one of two strategies. Standard mode returns a single
// page with last-page metadata. Hybrid mode returns the whole 5-page
// batch containing the requested page, aligned to batch boundaries, so
// sequential paging inside one batch needs no further round-trips.
func (h *FoodHandler) Index(c echo.Context) error {
	filter := repository.FoodFilter{
		Name:    c.QueryParam("name"),
		SortBy:  c.QueryParam("sortby"),
		SortDir: c.QueryParam("sortorder"),
	}
	if v := c.QueryParam("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.CategoryID = id
		}
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}
	if filter.SortDir == "" {
		filter.SortDir = "asc"
	}

	page, perPage := pagination.Clamp(
		queryInt(c, "page", "1"),
		queryInt(c, "per_page", strconv.Itoa(h.Cfg.PerPage)),
		h.Cfg.PerPage, h.Cfg.MaxPerPage)
	hybrid := queryBool(c, "hybrid")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	total, err := h.Foods.Count(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}

	if hybrid {
		offset, limit := pagination.Window(page, perPage)
		items, err := h.Foods.List(ctx, filter, offset, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data": echo.Map{
				"items":         items,
				"total":         total,
				"itemsPerPage":  perPage,
				"currentPage":   page,
				"pagesPerFetch": pagination.PagesPerFetch,
				"isHybrid":      true,
			},
		})
	}

	items, err := h.Foods.List(ctx, filter, pagination.Offset(page, perPage), perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"items":        items,
			"total":        total,
			"itemsPerPage": perPage,
			"currentPage":  page,
			"lastPage":     pagination.LastPage(total, perPage),
			"isHybrid":     false,
		},
	})
}

// Show handles GET /v1/foods/:id.
func (h *FoodHandler) Show(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return foodNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fd, err := h.Foods.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return foodNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": fd})
}

type foodCreateReq struct {
	SourceURL           *string  `json:"source_url"`
	SourceID            *int64   `json:"source_id"`
	Name                *string  `json:"name"`
	Category            *string  `json:"category"`
	CategoryID          *uint64  `json:"category_id"`
	EnergyKJ            *float64 `json:"energy_kj"`
	CaloriesKcal        *float64 `json:"calories_kcal"`
	ProteinG            *float64 `json:"protein_g"`
	CarbohydrateG       *float64 `json:"carbohydrate_g"`
	FatG                *float64 `json:"fat_g"`
	SaturatedFatG       *float64 `json:"saturated_fat_g"`
	MonounsaturatedFatG *float64 `json:"monounsaturated_fat_g"`
	PolyunsaturatedFatG *float64 `json:"polyunsaturated_fat_g"`
	CholesterolMg       *float64 `json:"cholesterol_mg"`
	FiberG              *float64 `json:"fiber_g"`
}

// nutritionFields pairs each optional nutrition input with its field
// name for the min:0 rule.
func (r *foodCreateReq) nutritionFields() map[string]*float64 {
	return map[string]*float64{
		"energy_kj":             r.EnergyKJ,
		"calories_kcal":         r.CaloriesKcal,
		"protein_g":             r.ProteinG,
		"carbohydrate_g":        r.CarbohydrateG,
		"fat_g":                 r.FatG,
		"saturated_fat_g":       r.SaturatedFatG,
		"monounsaturated_fat_g": r.MonounsaturatedFatG,
		"polyunsaturated_fat_g": r.PolyunsaturatedFatG,
		"cholesterol_mg":        r.CholesterolMg,
		"fiber_g":               r.FiberG,
	}
}

// Store handles POST /v1/foods. category_id, energy_kj and
// calories_kcal are required; every nutrition value must be >= 0; the
// category must exist.
func (h *FoodHandler) Store(c echo.Context) error {
	var req foodCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fe := fieldErrors{}
	if req.CategoryID == nil {
		fe.add("category_id", "The category_id field is required.")
	} else if ok, err := h.Categories.Exists(ctx, *req.CategoryID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	} else if !ok {
		fe.add("category_id", "The selected category_id is invalid.")
	}
	if req.EnergyKJ == nil {
		fe.add("energy_kj", "The energy_kj field is required.")
	}
	if req.CaloriesKcal == nil {
		fe.add("calories_kcal", "The calories_kcal field is required.")
	}
	for field, v := range req.nutritionFields() {
		if v != nil && *v < 0 {
			fe.add(field, "The "+field+" must be at least 0.")
		}
	}
	if fe.any() {
		return validationFailed(c, fe)
	}

	fd := model.Food{CategoryID: *req.CategoryID, EnergyKJ: *req.EnergyKJ, CaloriesKcal: *req.CaloriesKcal}
	if req.SourceURL != nil {
		fd.SourceURL = *req.SourceURL
	}
	if req.SourceID != nil {
		fd.SourceID = *req.SourceID
	}
	if req.Name != nil {
		fd.Name = *req.Name
	}
	if req.Category != nil {
		fd.CategoryName = *req.Category
	}
	if req.ProteinG != nil {
		fd.ProteinG = *req.ProteinG
	}
	if req.CarbohydrateG != nil {
		fd.CarbohydrateG = *req.CarbohydrateG
	}
	if req.FatG != nil {
		fd.FatG = *req.FatG
	}
	if req.SaturatedFatG != nil {
		fd.SaturatedFatG = *req.SaturatedFatG
	}
	if req.MonounsaturatedFatG != nil {
		fd.MonounsaturatedFatG = *req.MonounsaturatedFatG
	}
	if req.PolyunsaturatedFatG != nil {
		fd.PolyunsaturatedFatG = *req.PolyunsaturatedFatG
	}
	if req.CholesterolMg != nil {
		fd.CholesterolMg = *req.CholesterolMg
	}
	if req.FiberG != nil {
		fd.FiberG = *req.FiberG
	}

	if err := h.Foods.Create(ctx, &fd); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "create food failed"})
	}
	created, err := h.Foods.GetByID(ctx, fd.ID)
	if err != nil {
		created = fd
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"data":    created,
		"message": "Food created successfully",
	})
}

// Update handles PUT /v1/foods/:id with optional fields; the same
// numeric and category rules apply to whatever is present.
func (h *FoodHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return foodNotFound(c)
	}
	var req foodCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Foods.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return foodNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}

	fe := fieldErrors{}
	if req.CategoryID != nil {
		if ok, err := h.Categories.Exists(ctx, *req.CategoryID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
		} else if !ok {
			fe.add("category_id", "The selected category_id is invalid.")
		}
	}
	for field, v := range req.nutritionFields() {
		if v != nil && *v < 0 {
			fe.add(field, "The "+field+" must be at least 0.")
		}
	}
	if fe.any() {
		return validationFailed(c, fe)
	}

	patch := repository.FoodPatch{
		SourceURL:           req.SourceURL,
		SourceID:            req.SourceID,
		Name:                req.Name,
		CategoryID:          req.CategoryID,
		EnergyKJ:            req.EnergyKJ,
		CaloriesKcal:        req.CaloriesKcal,
		ProteinG:            req.ProteinG,
		CarbohydrateG:       req.CarbohydrateG,
		FatG:                req.FatG,
		SaturatedFatG:       req.SaturatedFatG,
		MonounsaturatedFatG: req.MonounsaturatedFatG,
		PolyunsaturatedFatG: req.PolyunsaturatedFatG,
		CholesterolMg:       req.CholesterolMg,
		FiberG:              req.FiberG,
	}
	if err := h.Foods.Update(ctx, id, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "update food failed"})
	}
	updated, err := h.Foods.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    updated,
		"message": "Food updated successfully",
	})
}

// Destroy handles DELETE /v1/foods/:id.
func (h *FoodHandler) Destroy(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return foodNotFound(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Foods.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return foodNotFound(c)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "delete food failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Food deleted successfully",
	})
}

// ListCategories handles GET /v1/foods/categories.
func (h *FoodHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": cats})
}

// ByCategory handles GET /v1/foods/categories/:id and returns every
// food in one category.
func (h *FoodHandler) ByCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Category not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	foods, err := h.Foods.ListByCategory(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": foods})
}

func foodNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"success": false,
		"message": "Food not found",
	})
}
