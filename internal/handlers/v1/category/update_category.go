package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
)

type UpdateCategoryBody struct {
	Name string `json:"name,omitempty" doc:"New display name, 1-50 characters after trimming"`
}

type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category UUID"`
	Body UpdateCategoryBody
}

type UpdateCategoryOutput struct {
	Body Category
}

// UpdateCategoryHandler handles PATCH /categories/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryService
}

func NewUpdateCategoryHandler(svc categoryService) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc}
}

func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/categories/{id}",
		Summary:     "Rename category",
		Tags:        []string{"Categories"},
		Security:    handlers.BearerAuth,
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlers.ParseID(input.ID, ledger.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("renameCategoryMs")
	renamed, err := h.CategoryService.RenameCategory(ctx, userID, id, input.Body.Name)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to update category")
	}

	return &UpdateCategoryOutput{Body: toCategory(renamed)}, nil
}
