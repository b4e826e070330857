package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/myliquor/myliquor-server/dbHelpers"
	"github.com/myliquor/myliquor-server/firebase"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/pricing"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type productRequest struct {
	ProductName   string          `json:"productName"`
	ProductImage  null.String     `json:"productImage"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Size          null.String     `json:"size"`
	Category      string          `json:"category"`
	BadgeText     null.String     `json:"badgeText"`
}

// validate applies the required-field and price-policy checks before any
// database write.
func (req *productRequest) validate() error {
	if req.ProductName == "" {
		return errors.New("product name is required")
	}
	if !models.IsValidProductCategory(req.Category) {
		return errors.New("unknown product category: " + req.Category)
	}
	result := pricing.Validate(req.OriginalPrice, req.SalePrice, models.ProductCategory(req.Category))
	if !result.IsValid {
		return errors.New(result.Error)
	}
	return nil
}

func GetSaleProducts(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	products, err := dbHelpers.GetSaleProducts(saleID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get product entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

func CreateProduct(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	var reqBody productRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	product, err := dbHelpers.InsertSaleProduct(saleID, reqBody.ProductName, reqBody.ProductImage,
		reqBody.OriginalPrice, reqBody.SalePrice, reqBody.Size, models.ProductCategory(reqBody.Category), reqBody.BadgeText)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to store product entry")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, product)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var reqBody productRequest
	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if err := reqBody.validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, err.Error())
		return
	}

	product, err := dbHelpers.UpdateSaleProduct(productID, reqBody.ProductName, reqBody.ProductImage,
		reqBody.OriginalPrice, reqBody.SalePrice, reqBody.Size, models.ProductCategory(reqBody.Category), reqBody.BadgeText)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Product not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to update product entry")
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	if err := dbHelpers.DeleteSaleProduct(productID); err != nil {
		if err == sql.ErrNoRows {
			utils.RespondError(w, http.StatusNotFound, err, "Product not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to delete product entry")
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ReorderProducts rewrites every position of a sale's products to match the
// given id order.
func ReorderProducts(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	reqBody := struct {
		ProductIDs []string `json:"productIds"`
	}{}

	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}
	if len(reqBody.ProductIDs) == 0 {
		utils.RespondError(w, http.StatusBadRequest, errors.New("empty product id list"), "Product id list can't be empty")
		return
	}

	if err := dbHelpers.ReorderSaleProducts(saleID, reqBody.ProductIDs); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to reorder products")
		return
	}

	products, err := dbHelpers.GetSaleProducts(saleID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed to get product entries")
		return
	}
	utils.RespondJSON(w, http.StatusOK, products)
}

// ValidatePrice runs the price validator for live admin-form feedback
func ValidatePrice(w http.ResponseWriter, r *http.Request) {
	reqBody := struct {
		OriginalPrice decimal.Decimal `json:"originalPrice"`
		SalePrice     decimal.Decimal `json:"salePrice"`
		Category      string          `json:"category"`
	}{}

	if err := utils.ParseBody(r.Body, &reqBody); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "Failed to decode request body")
		return
	}

	result := pricing.Validate(reqBody.OriginalPrice, reqBody.SalePrice, models.ProductCategory(reqBody.Category))
	utils.RespondJSON(w, http.StatusOK, result)
}

// UploadProductImage stores an image blob under the sale's folder and
// returns its retrieval URL
func UploadProductImage(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleId")

	file, fileBytes, uploadedFileName, err := utils.ReadFromFile(r, string(models.ProductImage))
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in reading image file")
		return
	}

	defer func() {
		if err := file.Close(); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, err, "Failed in closing file")
			return
		}
	}()

	path := saleID + "/" + uuid.New().String() + "." + utils.FileExtension(uploadedFileName)
	if err := firebase.Upload(models.ProductImagesBucket, path, fileBytes); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in uploading image")
		return
	}

	url, err := firebase.GetURL(&models.Image{Bucket: models.ProductImagesBucket, Path: path})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, err, "Failed in getting image URL")
		return
	}

	response := struct {
		ImageURL string `json:"imageURL"`
	}{
		ImageURL: url,
	}
	utils.RespondJSON(w, http.StatusOK, response)
}
