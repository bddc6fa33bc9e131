package api

import (
	"net/http"

	"jobly/internal/sqlfrag"
	"jobly/internal/store"

	"github.com/gin-gonic/gin"
)

type companyCreateRequest struct {
	Handle       string  `json:"handle" binding:"required,max=25,lowercase"`
	Name         string  `json:"name" binding:"required,max=255"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees" binding:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

// handle через PATCH не меняется
type companyUpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description  *string `json:"description"`
	NumEmployees *int64  `json:"numEmployees" binding:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl" binding:"omitempty,url"`
}

func CompanyCreateHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req companyCreateRequest
		if _, ok := bindStrict(c, &req); !ok {
			return
		}
		company, err := st.CreateCompany(c.Request.Context(), store.NewCompany{
			Handle:       req.Handle,
			Name:         req.Name,
			Description:  req.Description,
			NumEmployees: req.NumEmployees,
			LogoURL:      req.LogoURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"company": company})
	}
}

func CompanyListHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		where, ok := compileFilters(c, sqlfrag.CompileCompanyFilter)
		if !ok {
			return
		}
		companies, err := st.FindCompanies(c.Request.Context(), where)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"companies": companies})
	}
}

func CompanyGetHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		company, err := st.GetCompany(c.Request.Context(), c.Param("handle"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"company": company})
	}
}

func CompanyUpdateHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req companyUpdateRequest
		body, ok := bindStrict(c, &req)
		if !ok {
			return
		}
		changes, ok := changesFrom(c, body)
		if !ok {
			return
		}
		company, err := st.UpdateCompany(c.Request.Context(), c.Param("handle"), changes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"company": company})
	}
}

func CompanyDeleteHandler(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := c.Param("handle")
		if err := st.RemoveCompany(c.Request.Context(), handle); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": handle})
	}
}
