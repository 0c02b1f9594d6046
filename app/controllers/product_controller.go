package controllers

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/resources"
	"github.com/shashiranjanraj/digiteria/app/services"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/ctx"
	"github.com/shashiranjanraj/digiteria/pkg/logger"
	"github.com/shashiranjanraj/digiteria/pkg/middleware"
	"github.com/shashiranjanraj/digiteria/pkg/resource"
	"github.com/shashiranjanraj/digiteria/pkg/response"
	"github.com/shashiranjanraj/digiteria/pkg/storage"
)

// inlineFileLimit is the largest upload kept base64-inline in the document;
// anything bigger goes to the storage disk and only the path is recorded.
const inlineFileLimit = 256 * 1024

// maxUploadBytes caps product file uploads at 50 MB.
const maxUploadBytes = 50 << 20

// ProductController handles the public catalogue and creator product CRUD.
type ProductController struct {
	store   *store.Store
	catalog *services.CatalogService
}

func NewProductController(st *store.Store, catalog *services.CatalogService) *ProductController {
	return &ProductController{store: st, catalog: catalog}
}

// Index lists approved products with search, category filter, sort and
// pagination. GET /api/products?q=&category=&sort=&page=&per_page=
func (p *ProductController) Index(c *ctx.Context) {
	products := p.catalog.Search(c.Query("q"), c.Query("category"), c.Query("sort"))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	pagination := response.Paginate(page, perPage, len(products))

	resource.CollectionOf(&resources.ProductResource{}, services.Page(products, page, perPage)).
		WithPagination(pagination).
		Respond(c.W)
}

// Show returns one product and counts the view. Unapproved products are
// only visible to their owner and admins.
func (p *ProductController) Show(c *ctx.Context) {
	product, ok := p.store.ProductByID(c.Param("id"))
	if !ok {
		c.NotFound("Product not found")
		return
	}

	if product.Status != models.StatusApproved && !p.canManage(c, product) {
		c.NotFound("Product not found")
		return
	}

	p.store.RecordProductView(product.ID)
	product.Views++

	resource.New(&resources.ProductResource{}, product).
		WithMeta(resource.Map{"reviews": len(p.store.ReviewsForProduct(product.ID))}).
		Respond(c.W)
}

type productInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Category    string  `json:"category" validate:"nullable,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0,lte=10000"`
	Status      string  `json:"status" validate:"nullable,in=draft,pending"`
}

// Create lists a new product for the authenticated creator. It always enters
// moderation as pending unless explicitly saved as draft.
func (p *ProductController) Create(c *ctx.Context) {
	var in productInput
	if !c.BindJSON(&in) {
		return
	}

	creatorID, _ := middleware.UserIDFromCtx(c.R)
	product := p.store.AddProduct(models.Product{
		CreatorID:   creatorID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Status:      in.Status,
	})

	logger.Info("products: created", "product", product.ID, "creator", creatorID)
	resource.New(&resources.ProductResource{}, product).Respond(c.W)
}

type productUpdateInput struct {
	Title       *string  `json:"title" validate:"nullable,min=3,max=200"`
	Description *string  `json:"description" validate:"nullable,max=5000"`
	Category    *string  `json:"category" validate:"nullable,max=100"`
	Price       *float64 `json:"price" validate:"nullable,gt=0,lte=10000"`
	Status      *string  `json:"status" validate:"nullable,in=draft,pending,archived"`
}

// Update patches a product. Owners can edit content and archive; moderation
// statuses go through the admin moderation endpoint instead.
func (p *ProductController) Update(c *ctx.Context) {
	product, ok := p.store.ProductByID(c.Param("id"))
	if !ok {
		c.NotFound("Product not found")
		return
	}
	if !p.canManage(c, product) {
		c.Forbidden()
		return
	}

	var in productUpdateInput
	if !c.BindJSON(&in) {
		return
	}

	updated, ok := p.store.UpdateProduct(product.ID, store.ProductPatch{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Status:      in.Status,
	})
	if !ok {
		c.NotFound("Product not found")
		return
	}
	resource.New(&resources.ProductResource{}, updated).Respond(c.W)
}

// Delete removes a product listing.
func (p *ProductController) Delete(c *ctx.Context) {
	product, ok := p.store.ProductByID(c.Param("id"))
	if !ok {
		c.NotFound("Product not found")
		return
	}
	if !p.canManage(c, product) {
		c.Forbidden()
		return
	}

	p.store.DeleteProduct(product.ID)
	logger.Info("products: deleted", "product", product.ID)
	c.Status(http.StatusNoContent)
}

// Mine lists every product of the authenticated creator, drafts included.
func (p *ProductController) Mine(c *ctx.Context) {
	creatorID, _ := middleware.UserIDFromCtx(c.R)
	resource.CollectionOf(&resources.ProductResource{}, p.store.ProductsByCreator(creatorID)).
		Respond(c.W)
}

// Upload attaches the downloadable file to a product. Small files are kept
// inline in the document; larger ones land on the configured storage disk.
func (p *ProductController) Upload(c *ctx.Context) {
	product, ok := p.store.ProductByID(c.Param("id"))
	if !ok {
		c.NotFound("Product not found")
		return
	}
	if !p.canManage(c, product) {
		c.Forbidden()
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxUploadBytes)
	if err := c.R.ParseMultipartForm(maxUploadBytes); err != nil {
		c.Error(http.StatusBadRequest, "Invalid upload")
		return
	}
	f, header, err := c.R.FormFile("file")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing file field")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.Error(http.StatusBadRequest, "Could not read upload")
		return
	}

	file := models.ProductFile{Name: path.Base(header.Filename), Size: int64(len(data))}
	if len(data) <= inlineFileLimit {
		file.Data = encodeFile(data)
	} else {
		file.Path = fmt.Sprintf("products/%s/%s", product.ID, file.Name)
		if err := storage.Put(file.Path, data); err != nil {
			logger.Error("products: upload store failed", "product", product.ID, "error", err)
			c.Error(http.StatusInternalServerError, "Could not store file")
			return
		}
	}

	updated, _ := p.store.UpdateProduct(product.ID, store.ProductPatch{File: &file})
	resource.New(&resources.ProductResource{}, updated).Respond(c.W)
}

// Download streams the product file to a buyer who purchased it (or the
// owner previewing their own upload).
func (p *ProductController) Download(c *ctx.Context) {
	product, ok := p.store.ProductByID(c.Param("id"))
	if !ok || product.File == nil {
		c.NotFound("No file for this product")
		return
	}

	userID, _ := middleware.UserIDFromCtx(c.R)
	if !p.store.HasPurchased(userID, product.ID) && !p.canManage(c, product) {
		c.Forbidden("Purchase required")
		return
	}

	var data []byte
	var err error
	switch {
	case product.File.Data != "":
		data, err = decodeFile(product.File.Data)
	case product.File.Path != "":
		data, err = storage.Get(product.File.Path)
	default:
		c.NotFound("No file for this product")
		return
	}
	if err != nil {
		logger.Error("products: download failed", "product", product.ID, "error", err)
		c.Error(http.StatusInternalServerError, "Could not read file")
		return
	}

	c.SetHeader("Content-Disposition", fmt.Sprintf("attachment; filename=%q", product.File.Name))
	c.SetHeader("Content-Type", "application/octet-stream")
	c.W.Write(data) //nolint:errcheck
}

// Moderate sets the moderation status: admin-only approve/reject.
func (p *ProductController) Moderate(c *ctx.Context) {
	var in struct {
		Status string `json:"status" validate:"required,in=approved,rejected"`
	}
	if !c.BindJSON(&in) {
		return
	}

	updated, ok := p.store.UpdateProduct(c.Param("id"), store.ProductPatch{Status: &in.Status})
	if !ok {
		c.NotFound("Product not found")
		return
	}
	logger.Info("products: moderated", "product", updated.ID, "status", in.Status)
	resource.New(&resources.ProductResource{}, updated).Respond(c.W)
}

// canManage reports whether the caller owns the product or is an admin.
func (p *ProductController) canManage(c *ctx.Context, product models.Product) bool {
	id, ok := middleware.IdentityFromCtx(c.R)
	if !ok {
		return false
	}
	return id.UserID == product.CreatorID || id.Role == models.RoleAdmin
}
