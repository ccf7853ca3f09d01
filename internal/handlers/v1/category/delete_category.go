package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
)

type DeleteCategoryInput struct {
	ID string `path:"id" doc:"Category UUID"`
}

// DeleteCategoryHandler handles DELETE /categories/{id}. Transactions that
// reference the category are kept and render as Unknown afterwards.
type DeleteCategoryHandler struct {
	CategoryService categoryService
}

func NewDeleteCategoryHandler(svc categoryService) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{CategoryService: svc}
}

func (h *DeleteCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-category",
		Method:        http.MethodDelete,
		Path:          "/categories/{id}",
		Summary:       "Delete category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusNoContent,
		Security:      handlers.BearerAuth,
	}, h.handle)
}

func (h *DeleteCategoryHandler) handle(ctx context.Context, input *DeleteCategoryInput) (*struct{}, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := handlers.ParseID(input.ID, ledger.ErrCategoryNotFound)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("deleteCategoryMs")
	err = h.CategoryService.DeleteCategory(ctx, userID, id)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to delete category")
	}
	return nil, nil
}
