package v1

import (
	"net/http"

	"github.com/coinkeep/backend/internal/httputil"
	"github.com/coinkeep/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

type CategoryEditable struct {
	Name  string `json:"name" example:"Groceries"`
	Note  string `json:"note" example:"Everything that goes into the fridge"`
	Icon  string `json:"icon" example:"cart"`
	Color string `json:"color" example:"#2E8B57"`
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:  editable.Name,
		Note:  editable.Note,
		Icon:  editable.Icon,
		Color: editable.Color,
	}
}

type CategoryResponse struct {
	Data  *models.Category `json:"data"`
	Error *string          `json:"error"`
}

type CategoryListResponse struct {
	Data       []models.Category `json:"data"`
	Error      *string           `json:"error"`
	Pagination *Pagination       `json:"pagination"`
}

type CategoryQueryFilter struct {
	Name   string `form:"name"`
	Offset uint   `form:"offset"`
	Limit  *int   `form:"limit"`
}

func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Category{}, id).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	category := editable.model()
	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, CategoryListResponse{Error: strPtr(err.Error())})
		return
	}

	q := models.DB.Order("name ASC")
	if filter.Name != "" {
		q = q.Where("name LIKE ?", "%"+filter.Name+"%")
	}

	limit := listLimit(filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		c.JSON(status(err), CategoryListResponse{Error: strPtr(err.Error())})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		c.JSON(status(err), CategoryListResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: categories,
		Pagination: &Pagination{
			Count:  len(categories),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

func UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	var editable CategoryEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	if err := models.DB.Model(&category).Select("", updateFields...).Updates(editable.model()).Error; err != nil {
		c.JSON(status(err), CategoryResponse{Error: strPtr(err.Error())})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

// DeleteCategory deletes the category. Transactions, budgets and
// recurring rules referencing it stay untouched and become
// uncategorized.
func DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var category models.Category
	if err := models.DB.First(&category, id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func strPtr(s string) *string {
	return &s
}
