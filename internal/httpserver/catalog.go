package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skishop-bff/internal/domain"
)

// upstreamStatus maps an upstream client error to a response status.
func upstreamStatus(err error) (int, string) {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, "not found"
	}
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		msg := ue.Message
		if msg == "" {
			msg = "upstream service error"
		}
		return http.StatusBadGateway, msg
	}
	return http.StatusBadGateway, "upstream service unavailable"
}

func listProductsHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := domain.ProductQuery{
			Search:     c.Query("search"),
			CategoryID: c.Query("categoryId"),
			BrandID:    c.Query("brandId"),
			Sort:       c.Query("sort"),
		}
		if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
			q.MinPrice = &v
		}
		if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
			q.MaxPrice = &v
		}
		if v, err := strconv.ParseBool(c.Query("featured")); err == nil {
			q.Featured = &v
		}
		if v, err := strconv.ParseBool(c.Query("onSale")); err == nil {
			q.OnSale = &v
		}
		if v, err := strconv.Atoi(c.Query("page")); err == nil {
			q.Page = &v
		}
		if v, err := strconv.Atoi(c.Query("size")); err == nil {
			q.Size = &v
		}

		products, err := catalog.Products(c.Request.Context(), q)
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.ProductByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func listCategoriesHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalog.Categories(c.Request.Context())
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

func categoryProductsHandler(catalog Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.CategoryProducts(c.Request.Context(), c.Param("id"))
		if err != nil {
			status, msg := upstreamStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
