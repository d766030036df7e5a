package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"mcq-platform/internal/web"
)

var validate = validator.New()

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List()
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	detail, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Category not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"category": detail})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.service.Create(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, ErrNameTaken) {
			web.Error(w, http.StatusBadRequest, "Category name already exists")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Error creating category")
		return
	}

	web.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Category created successfully",
		"categoryId": category.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil && req.Description == nil {
		web.Error(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := h.service.Update(id, req.Name, req.Description); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			web.Error(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, ErrNameTaken):
			web.Error(w, http.StatusBadRequest, "Category name already exists")
		default:
			web.Error(w, http.StatusInternalServerError, "Error updating category")
		}
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Category updated successfully"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.Delete(id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			web.Error(w, http.StatusNotFound, "Category not found")
		case errors.Is(err, ErrInUse):
			web.Error(w, http.StatusBadRequest, "Cannot delete category that is being used by quizzes")
		default:
			web.Error(w, http.StatusInternalServerError, "Error deleting category")
		}
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
